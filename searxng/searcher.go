// Package searxng provides a govdoc.Searcher backed by a SearxNG instance.
package searxng

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/govdoc"
)

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 10 * time.Second

var _ govdoc.Searcher = (*Searcher)(nil)

// Searcher queries the /search JSON endpoint of a SearxNG instance.
type Searcher struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(s *Searcher) {
		s.client = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Searcher) {
		s.userAgent = ua
	}
}

// NewSearcher creates a Searcher for the instance at baseURL.
func NewSearcher(baseURL string, opts ...Option) *Searcher {
	s := &Searcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns up to limit results for query. Entries without a title or
// URL are skipped.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]govdoc.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, govdoc.Errorf(govdoc.EINVALID, "query required")
	}
	if limit <= 0 {
		limit = 10
	}

	u, err := url.Parse(s.baseURL)
	if err != nil || u.Host == "" {
		return nil, govdoc.Errorf(govdoc.EINVALID, "invalid searxng url %q", s.baseURL)
	}
	if !strings.HasSuffix(u.Path, "/search") {
		u.Path = strings.TrimRight(u.Path, "/") + "/search"
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("safesearch", "1")
	q.Set("categories", "general")
	q.Set("count", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, govdoc.Errorf(govdoc.EFETCH, "searching: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, govdoc.Errorf(govdoc.EFETCH, "searxng returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, govdoc.Errorf(govdoc.EPARSE, "decoding searxng response: %v", err)
	}

	out := make([]govdoc.SearchResult, 0, len(sr.Results))
	for _, r := range sr.Results {
		title, link := strings.TrimSpace(r.Title), strings.TrimSpace(r.URL)
		if title == "" || link == "" {
			continue
		}
		out = append(out, govdoc.SearchResult{
			Title:   title,
			URL:     link,
			Snippet: strings.TrimSpace(r.Content),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}
