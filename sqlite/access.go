package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/govdoc"
	"github.com/google/uuid"
)

var _ govdoc.AccessService = (*AccessService)(nil)

// AccessService implements govdoc.AccessService using SQLite.
type AccessService struct {
	db  *DB
	now func() time.Time
}

// NewAccessService creates a new AccessService.
func NewAccessService(db *DB) *AccessService {
	return &AccessService{db: db, now: time.Now}
}

// RecordAccess stores access. Bytes and ContentHash describe content when
// it is non-empty.
func (s *AccessService) RecordAccess(ctx context.Context, access *govdoc.Access, content []byte) error {
	if err := access.Validate(); err != nil {
		return err
	}

	access.ID = uuid.New().String()
	access.CreatedAt = s.now().UTC().Truncate(time.Second)
	access.Bytes = len(content)
	access.ContentHash = ""
	if len(content) > 0 {
		access.ContentHash = hashContent(content)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accesses (id, tool, url, host, outcome, bytes, content_hash, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, access.ID, access.Tool, access.URL, access.Host, string(access.Outcome), access.Bytes,
		access.ContentHash, access.Error, access.CreatedAt.Format(time.RFC3339))

	return err
}

// FindAccesses retrieves accesses matching the filter, newest first.
func (s *AccessService) FindAccesses(ctx context.Context, filter govdoc.AccessFilter) ([]*govdoc.Access, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, tool, url, host, outcome, bytes, content_hash, error, created_at FROM accesses WHERE 1=1")

	if filter.Host != nil {
		query.WriteString(" AND host = ?")
		args = append(args, strings.ToLower(*filter.Host))
	}
	if filter.Outcome != nil {
		query.WriteString(" AND outcome = ?")
		args = append(args, string(*filter.Outcome))
	}
	if filter.Tool != nil {
		query.WriteString(" AND tool = ?")
		args = append(args, *filter.Tool)
	}

	// Timestamps have second resolution; rowid breaks ties by insertion order.
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accesses := []*govdoc.Access{}
	for rows.Next() {
		var a govdoc.Access
		var outcome, createdAt string

		if err := rows.Scan(&a.ID, &a.Tool, &a.URL, &a.Host, &outcome, &a.Bytes,
			&a.ContentHash, &a.Error, &createdAt); err != nil {
			return nil, err
		}
		a.Outcome = govdoc.Outcome(outcome)

		if a.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		accesses = append(accesses, &a)
	}

	return accesses, rows.Err()
}
