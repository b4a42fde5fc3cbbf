package govdoc

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations use browser automation so client-side scripts run before
// the document is read.
type Fetcher interface {
	// Fetch navigates to the URL, waits for JavaScript to render,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Downloader retrieves raw bytes (e.g. a PDF) from a URL.
type Downloader interface {
	// Download performs a single GET of url and returns the response body.
	// Non-2xx responses and timeouts return EFETCH.
	Download(ctx context.Context, url string) ([]byte, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
