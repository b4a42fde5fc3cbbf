package govdoc

import (
	"context"
	"time"
)

// Outcome is the terminal state of a gated extraction.
type Outcome string

// Outcome constants.
const (
	OutcomeVerified Outcome = "verified"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// Access records one gated request and how it ended.
type Access struct {
	ID          string    `json:"id"`
	Tool        string    `json:"tool"`
	URL         string    `json:"url"`
	Host        string    `json:"host"`
	Outcome     Outcome   `json:"outcome"`
	Bytes       int       `json:"bytes"`
	ContentHash string    `json:"contentHash"`
	Error       string    `json:"error"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the access contains invalid fields.
func (a *Access) Validate() error {
	if a.Tool == "" {
		return Errorf(EINVALID, "access tool required")
	}
	if a.URL == "" {
		return Errorf(EINVALID, "access url required")
	}
	switch a.Outcome {
	case OutcomeVerified, OutcomeRejected, OutcomeFailed:
	default:
		return Errorf(EINVALID, "invalid access outcome %q", a.Outcome)
	}
	return nil
}

// AccessService represents a ledger of gated requests.
type AccessService interface {
	// RecordAccess stores a new access. ID, ContentHash and CreatedAt are
	// assigned by the service.
	RecordAccess(ctx context.Context, access *Access, content []byte) error

	// FindAccesses retrieves accesses matching the filter, newest first.
	FindAccesses(ctx context.Context, filter AccessFilter) ([]*Access, error)
}

// AccessFilter represents a filter for FindAccesses.
type AccessFilter struct {
	Host    *string  `json:"host"`
	Outcome *Outcome `json:"outcome"`
	Tool    *string  `json:"tool"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
