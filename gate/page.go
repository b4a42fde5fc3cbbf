package gate

import (
	"context"
	"log/slog"

	"github.com/fwojciec/govdoc"
)

// PageExtractor returns the visible text of government web pages rendered
// in a browser. Pages are never cached.
type PageExtractor struct {
	Authorizer govdoc.Authorizer
	Fetcher    govdoc.Fetcher
	Extractor  govdoc.TextExtractor

	// Optional.
	Limiter  govdoc.DomainLimiter
	Accesses govdoc.AccessService
	Logger   *slog.Logger

	// MaxLength is the number of characters kept before truncation.
	// Zero uses govdoc.MaxTextLength.
	MaxLength int
}

// ExtractPage authorizes rawURL, renders the page, reduces it to text and
// annotates it with the verified host. Unauthorized URLs return a rejection
// notice without starting a render. Any failure, including a render
// timeout, returns a failure notice.
func (e *PageExtractor) ExtractPage(ctx context.Context, rawURL string) string {
	l := ledger{accesses: e.Accesses, logger: e.Logger}

	decision, err := e.Authorizer.Authorize(rawURL)
	if err != nil || !decision.Authorized {
		l.record(ctx, ToolPage, rawURL, decision.Host, govdoc.OutcomeRejected, nil, err)
		return govdoc.Reject(rejectedHost(decision, rawURL))
	}

	html, err := render(ctx, e.Fetcher, e.Limiter, decision.Host, rawURL)
	if err != nil {
		outcome := govdoc.OutcomeFailed
		if govdoc.ErrorCode(err) == govdoc.EUNAUTHORIZED {
			outcome = govdoc.OutcomeRejected
		}
		l.record(ctx, ToolPage, rawURL, decision.Host, outcome, nil, err)
		return govdoc.Fail("extracting content from government website", err)
	}

	text, err := guard("extracting text", func() (string, error) {
		return e.Extractor.ExtractText(html)
	})
	if err != nil {
		l.record(ctx, ToolPage, rawURL, decision.Host, govdoc.OutcomeFailed, []byte(html), err)
		return govdoc.Fail("extracting content from government website", err)
	}

	l.record(ctx, ToolPage, rawURL, decision.Host, govdoc.OutcomeVerified, []byte(html), nil)
	return govdoc.Annotate(text, decision.Host, govdoc.SourcePage, e.MaxLength)
}

// render waits for the limiter and fetches the rendered HTML.
func render(ctx context.Context, f govdoc.Fetcher, l govdoc.DomainLimiter, host, rawURL string) (string, error) {
	if err := wait(ctx, l, host); err != nil {
		return "", err
	}
	return f.Fetch(ctx, rawURL)
}
