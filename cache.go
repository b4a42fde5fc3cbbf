package govdoc

import (
	"context"
	"time"
)

// FetchFunc retrieves the bytes for a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Cache is a content cache keyed by source URL.
type Cache interface {
	// GetOrFetch returns the cached bytes for url. On a miss it calls fetch,
	// persists the result and returns it. Errors from fetch are returned
	// unchanged and nothing is stored. Storage errors return EFETCH.
	GetOrFetch(ctx context.Context, url string, fetch FetchFunc) ([]byte, error)
}

// CachePolicy controls how long cache entries stay valid.
type CachePolicy struct {
	// MaxAge is how long an entry is served after it was written.
	// Zero means entries never expire: the first successful fetch is served
	// forever, regardless of changes at the source.
	MaxAge time.Duration
}

// NeverExpire is the append-only policy: entries are never invalidated.
var NeverExpire = CachePolicy{}

// Expired reports whether an entry written at savedAt is stale at now.
func (p CachePolicy) Expired(savedAt, now time.Time) bool {
	if p.MaxAge <= 0 {
		return false
	}
	return now.Sub(savedAt) > p.MaxAge
}
