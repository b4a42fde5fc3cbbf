package gate

import (
	"context"
	"log/slog"

	"github.com/fwojciec/govdoc"
)

// DocumentExtractor returns the text of government documents (PDFs).
//
// Downloads go through the Cache, so a URL is fetched from the network at
// most once while its entry is valid. DocumentExtractor is safe for
// concurrent use if its dependencies are.
type DocumentExtractor struct {
	Authorizer govdoc.Authorizer
	Cache      govdoc.Cache
	Downloader govdoc.Downloader
	Parser     govdoc.DocumentParser

	// Optional.
	Limiter  govdoc.DomainLimiter
	Accesses govdoc.AccessService
	Logger   *slog.Logger

	// MaxLength is the number of characters kept before truncation.
	// Zero uses govdoc.MaxTextLength.
	MaxLength int
}

// ExtractDocument authorizes rawURL, fetches the document through the
// cache, extracts its text page by page and annotates it with the verified
// host. Unauthorized URLs return a rejection notice without touching the
// cache or the network. Any failure returns a failure notice.
func (e *DocumentExtractor) ExtractDocument(ctx context.Context, rawURL string) string {
	l := ledger{accesses: e.Accesses, logger: e.Logger}

	decision, err := e.Authorizer.Authorize(rawURL)
	if err != nil || !decision.Authorized {
		l.record(ctx, ToolDocument, rawURL, decision.Host, govdoc.OutcomeRejected, nil, err)
		return govdoc.Reject(rejectedHost(decision, rawURL))
	}

	data, err := e.Cache.GetOrFetch(ctx, rawURL, func(ctx context.Context) ([]byte, error) {
		if err := wait(ctx, e.Limiter, decision.Host); err != nil {
			return nil, err
		}
		return e.Downloader.Download(ctx, rawURL)
	})
	if err != nil {
		l.record(ctx, ToolDocument, rawURL, decision.Host, govdoc.OutcomeFailed, nil, err)
		return govdoc.Fail("downloading government PDF", err)
	}

	text, err := e.parse(data)
	if err != nil {
		l.record(ctx, ToolDocument, rawURL, decision.Host, govdoc.OutcomeFailed, data, err)
		return govdoc.Fail("parsing government PDF", err)
	}

	l.record(ctx, ToolDocument, rawURL, decision.Host, govdoc.OutcomeVerified, data, nil)
	return govdoc.Annotate(text, decision.Host, govdoc.SourceDocument, e.MaxLength)
}

// parse runs the parser, turning a panic into an EPARSE error.
func (e *DocumentExtractor) parse(data []byte) (string, error) {
	return guard("corrupt document", func() (string, error) {
		return e.Parser.Parse(data)
	})
}
