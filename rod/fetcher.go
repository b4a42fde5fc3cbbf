// Package rod renders government web pages in headless Chrome using go-rod.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/govdoc"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultNavigationTimeout bounds navigation, load and settle for one page.
const DefaultNavigationTimeout = 60 * time.Second

// DefaultSettleDelay is how long a page may keep running scripts after the
// load event before its DOM is read.
const DefaultSettleDelay = 2 * time.Second

// Ensure Fetcher implements govdoc.Fetcher at compile time.
var _ govdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// JavaScript is enabled. Fetcher is safe for concurrent use by multiple
// goroutines.
type Fetcher struct {
	manager    *BrowserManager
	timeout    time.Duration
	settle     time.Duration
	authorizer govdoc.Authorizer
	maxPages   int64
	userAgent  string
	closed     atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithNavigationTimeout sets the timeout for rendering one page.
// Defaults to DefaultNavigationTimeout (60s) if not specified.
func WithNavigationTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay sets the delay between the load event and reading the DOM.
// Defaults to DefaultSettleDelay (2s) if not specified.
func WithSettleDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithFinalURLAuthorizer rejects pages whose URL after redirects and
// client-side navigation is not authorized.
func WithFinalURLAuthorizer(a govdoc.Authorizer) FetcherOption {
	return func(f *Fetcher) {
		f.authorizer = a
	}
}

// WithUserAgent overrides the browser's User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithBrowserRecycling sets how many pages the browser renders before it is
// replaced. Defaults to DefaultMaxPages.
func WithBrowserRecycling(n int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultNavigationTimeout,
		settle:   DefaultSettleDelay,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, waits for the load event plus the settle
// delay, and returns the rendered HTML. Exceeding the navigation timeout
// returns an EFETCH error mentioning the timeout.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", govdoc.Errorf(govdoc.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	lease, err := f.manager.Acquire()
	if err != nil {
		return "", err
	}
	defer lease.Release()

	page, err := lease.Browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", govdoc.Errorf(govdoc.EFETCH, "opening browser page: %v", err)
	}
	defer page.Close()

	p := page.Context(ctx)

	if f.userAgent != "" {
		if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", f.renderError(ctx, url, err)
		}
	}

	if err := p.Navigate(url); err != nil {
		return "", f.renderError(ctx, url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return "", f.renderError(ctx, url, err)
	}

	if f.settle > 0 {
		select {
		case <-time.After(f.settle):
		case <-ctx.Done():
			return "", f.renderError(ctx, url, ctx.Err())
		}
	}

	if f.authorizer != nil {
		info, err := p.Info()
		if err != nil {
			return "", f.renderError(ctx, url, err)
		}
		if !govdoc.IsAuthorized(f.authorizer, info.URL) {
			return "", govdoc.Errorf(govdoc.EUNAUTHORIZED, "page %s navigated to unauthorized %s", url, info.URL)
		}
	}

	html, err := p.HTML()
	if err != nil {
		return "", f.renderError(ctx, url, err)
	}

	return html, nil
}

// renderError maps a rod failure to an application error. A canceled parent
// context is returned as is so callers can tell cancellation from failure.
func (f *Fetcher) renderError(ctx context.Context, url string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return govdoc.Errorf(govdoc.EFETCH, "timeout rendering %s after %s", url, f.timeout)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return govdoc.Errorf(govdoc.EFETCH, "rendering %s: %v", url, err)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
