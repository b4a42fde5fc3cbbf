package mock

import (
	"context"

	"github.com/fwojciec/govdoc"
)

var _ govdoc.AccessService = (*AccessService)(nil)

// AccessService is a mock implementation of govdoc.AccessService.
type AccessService struct {
	RecordAccessFn func(ctx context.Context, access *govdoc.Access, content []byte) error
	FindAccessesFn func(ctx context.Context, filter govdoc.AccessFilter) ([]*govdoc.Access, error)
}

func (s *AccessService) RecordAccess(ctx context.Context, access *govdoc.Access, content []byte) error {
	return s.RecordAccessFn(ctx, access, content)
}

func (s *AccessService) FindAccesses(ctx context.Context, filter govdoc.AccessFilter) ([]*govdoc.Access, error) {
	return s.FindAccessesFn(ctx, filter)
}
