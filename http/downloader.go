// Package http provides net/http-based implementations for downloading
// government documents and discovering sitemap URLs.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/govdoc"
)

// DefaultTimeout bounds a single document download.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the client to government servers.
const DefaultUserAgent = "Mozilla/5.0 (Government Document Parser) AppleWebKit/537.36"

// DefaultMaxBytes caps the size of a downloaded document (50 MiB).
const DefaultMaxBytes = 50 << 20

// PDFSignature is the marker that opens every PDF file.
const PDFSignature = "%PDF-"

// signatureWindow is how far into a body the signature may appear. PDF
// readers tolerate leading junk before the header.
const signatureWindow = 1024

// maxRedirects caps redirect chains.
const maxRedirects = 5

// Ensure Downloader implements govdoc.Downloader at compile time.
var _ govdoc.Downloader = (*Downloader)(nil)

// Downloader retrieves raw documents with a single GET request.
// Downloader is safe for concurrent use.
type Downloader struct {
	client     *http.Client
	timeout    time.Duration
	userAgent  string
	maxBytes   int64
	authorizer govdoc.Authorizer
	signature  []byte
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout sets the timeout for a download.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(dl *Downloader) {
		dl.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(dl *Downloader) {
		dl.userAgent = ua
	}
}

// WithMaxBytes sets the largest accepted response body.
func WithMaxBytes(n int64) Option {
	return func(dl *Downloader) {
		dl.maxBytes = n
	}
}

// WithClient sets the underlying HTTP client. Its timeout and redirect
// policy are replaced by the Downloader's own.
func WithClient(c *http.Client) Option {
	return func(dl *Downloader) {
		dl.client = c
	}
}

// WithRedirectAuthorizer refuses redirects that leave the authorized
// domains. Without it redirects are followed to any http(s) host.
func WithRedirectAuthorizer(a govdoc.Authorizer) Option {
	return func(dl *Downloader) {
		dl.authorizer = a
	}
}

// WithSignature refuses bodies that do not contain sig within their first
// 1024 bytes, such as HTML error pages served with a 2xx status.
func WithSignature(sig string) Option {
	return func(dl *Downloader) {
		dl.signature = []byte(sig)
	}
}

// NewDownloader creates a new Downloader.
func NewDownloader(opts ...Option) *Downloader {
	dl := &Downloader{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(dl)
	}

	base := http.Client{}
	if dl.client != nil {
		base = *dl.client
	}
	base.Timeout = dl.timeout
	base.CheckRedirect = dl.checkRedirect
	dl.client = &base

	return dl
}

// Download retrieves the body at url.
func (dl *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, govdoc.Errorf(govdoc.EFETCH, "creating request: %v", err)
	}
	if dl.userAgent != "" {
		req.Header.Set("User-Agent", dl.userAgent)
	}

	resp, err := dl.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, govdoc.Errorf(govdoc.EFETCH, "timeout downloading %s", url)
		}
		return nil, govdoc.Errorf(govdoc.EFETCH, "downloading %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, govdoc.Errorf(govdoc.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, dl.maxBytes+1))
	if err != nil {
		return nil, govdoc.Errorf(govdoc.EFETCH, "reading body of %s: %v", url, err)
	}
	if int64(len(body)) > dl.maxBytes {
		return nil, govdoc.Errorf(govdoc.EFETCH, "document at %s exceeds %d bytes", url, dl.maxBytes)
	}
	if len(dl.signature) > 0 && !bytes.Contains(body[:min(len(body), signatureWindow)], dl.signature) {
		return nil, govdoc.Errorf(govdoc.EFETCH, "%s did not return a %s document (Content-Type %q)",
			url, bytes.TrimRight(dl.signature, "-"), resp.Header.Get("Content-Type"))
	}

	return body, nil
}

func (dl *Downloader) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("redirect to unsupported scheme %q", req.URL.Scheme)
	}
	if dl.authorizer != nil && !govdoc.IsAuthorized(dl.authorizer, req.URL.String()) {
		return fmt.Errorf("redirect to unauthorized host %q", req.URL.Hostname())
	}
	return nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
