package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/govdoc"
)

var _ govdoc.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache and logs whether each lookup was a hit.
type LoggingCache struct {
	next   govdoc.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next govdoc.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// GetOrFetch delegates to the wrapped cache and logs the lookup.
func (c *LoggingCache) GetOrFetch(ctx context.Context, url string, fetch govdoc.FetchFunc) (data []byte, err error) {
	hit := true
	defer func(begin time.Time) {
		c.logger.Info("cache",
			"url", url,
			"hit", hit,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.GetOrFetch(ctx, url, func(ctx context.Context) ([]byte, error) {
		hit = false
		return fetch(ctx)
	})
}
