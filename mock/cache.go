package mock

import (
	"context"

	"github.com/fwojciec/govdoc"
)

var _ govdoc.Cache = (*Cache)(nil)

// Cache is a mock implementation of govdoc.Cache.
type Cache struct {
	GetOrFetchFn func(ctx context.Context, url string, fetch govdoc.FetchFunc) ([]byte, error)
}

func (c *Cache) GetOrFetch(ctx context.Context, url string, fetch govdoc.FetchFunc) ([]byte, error) {
	return c.GetOrFetchFn(ctx, url, fetch)
}
