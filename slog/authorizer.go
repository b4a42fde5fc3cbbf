package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/govdoc"
)

var _ govdoc.Authorizer = (*LoggingAuthorizer)(nil)

// LoggingAuthorizer wraps an Authorizer and logs every decision. Denials and
// malformed input are logged at warn level.
type LoggingAuthorizer struct {
	next   govdoc.Authorizer
	logger *slog.Logger
}

// NewLoggingAuthorizer creates a new LoggingAuthorizer.
func NewLoggingAuthorizer(next govdoc.Authorizer, logger *slog.Logger) *LoggingAuthorizer {
	return &LoggingAuthorizer{next: next, logger: logger}
}

// Authorize delegates to the wrapped authorizer and logs the decision.
func (a *LoggingAuthorizer) Authorize(rawURL string) (govdoc.Decision, error) {
	d, err := a.next.Authorize(rawURL)
	level := slog.LevelInfo
	if err != nil || !d.Authorized {
		level = slog.LevelWarn
	}
	a.logger.Log(context.Background(), level, "authorize",
		"url", rawURL,
		"host", d.Host,
		"domain", d.Domain,
		"authorized", err == nil && d.Authorized,
		"err", err,
	)
	return d, err
}
