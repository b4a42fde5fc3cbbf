// Package gate implements the gated retrieval operations: every request is
// authorized against the government domain set before any network or cache
// access, and every result is a plain string that is either a rejection
// notice, a failure notice, or verified content with a provenance footer.
package gate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fwojciec/govdoc"
)

// Tool names recorded in the access ledger.
const (
	ToolDocument = "ParseAuthorizedGovPDF"
	ToolPage     = "ExtractAuthorizedGovContent"
	ToolLinks    = "ListAuthorizedGovLinks"
	ToolSitemap  = "DiscoverAuthorizedGovSitemap"
	ToolSearch   = "SearchAuthorizedGovSites"
)

// rejectedHost is the host named in a rejection notice. When the URL could
// not be parsed the raw input is named instead.
func rejectedHost(d govdoc.Decision, rawURL string) string {
	if d.Host != "" {
		return d.Host
	}
	return rawURL
}

// wait applies the per-domain limiter, if any.
func wait(ctx context.Context, l govdoc.DomainLimiter, host string) error {
	if l == nil {
		return nil
	}
	if err := l.Wait(ctx, host); err != nil {
		return govdoc.Errorf(govdoc.EFETCH, "waiting to contact %s: %v", host, err)
	}
	return nil
}

// guard runs fn, turning a panic into an EPARSE error prefixed with what.
func guard[T any](what string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, govdoc.Errorf(govdoc.EPARSE, "%s: %v", what, r)
		}
	}()
	return fn()
}

// ledger records accesses when an AccessService is configured. Recording
// never changes the result handed back to the caller.
type ledger struct {
	accesses govdoc.AccessService
	logger   *slog.Logger
}

func (l ledger) record(ctx context.Context, tool, rawURL, host string, outcome govdoc.Outcome, content []byte, cause error) {
	if l.accesses == nil {
		return
	}
	access := &govdoc.Access{
		Tool:    tool,
		URL:     rawURL,
		Host:    host,
		Outcome: outcome,
		Bytes:   len(content),
	}
	if cause != nil {
		access.Error = errorText(cause)
	}
	if err := l.accesses.RecordAccess(context.WithoutCancel(ctx), access, content); err != nil && l.logger != nil {
		l.logger.Warn("record access", "tool", tool, "url", rawURL, "err", err)
	}
}

// errorText is the human-readable form of err stored in the ledger.
func errorText(err error) string {
	var e *govdoc.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
