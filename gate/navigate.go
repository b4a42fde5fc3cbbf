package gate

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/govdoc"
)

// DefaultMaxLinks caps the number of URLs listed by a Navigator.
const DefaultMaxLinks = 200

// Navigator lists where an authorized government page or site leads,
// keeping only destinations that are themselves authorized.
type Navigator struct {
	Authorizer govdoc.Authorizer
	Fetcher    govdoc.Fetcher
	Links      govdoc.LinkExtractor
	Sitemaps   govdoc.SitemapService

	// NewURLSet returns an empty set for de-duplicating a sitemap listing
	// of n URLs. Defaults to an exact in-memory set. Page link listings
	// always use an exact set.
	NewURLSet func(n int) govdoc.URLSet

	// Optional.
	Limiter  govdoc.DomainLimiter
	Accesses govdoc.AccessService
	Logger   *slog.Logger

	// MaxLinks caps the listing. Zero uses DefaultMaxLinks.
	MaxLinks int
}

// ListLinks renders an authorized page and lists its links that point to
// authorized domains, marking links to PDF documents.
func (n *Navigator) ListLinks(ctx context.Context, rawURL string) string {
	l := ledger{accesses: n.Accesses, logger: n.Logger}

	decision, err := n.Authorizer.Authorize(rawURL)
	if err != nil || !decision.Authorized {
		l.record(ctx, ToolLinks, rawURL, decision.Host, govdoc.OutcomeRejected, nil, err)
		return govdoc.Reject(rejectedHost(decision, rawURL))
	}

	html, err := render(ctx, n.Fetcher, n.Limiter, decision.Host, rawURL)
	if err != nil {
		l.record(ctx, ToolLinks, rawURL, decision.Host, govdoc.OutcomeFailed, nil, err)
		return govdoc.Fail("listing links on government website", err)
	}

	links, err := guard("extracting links", func() ([]govdoc.Link, error) {
		return n.Links.ExtractLinks(html, rawURL)
	})
	if err != nil {
		l.record(ctx, ToolLinks, rawURL, decision.Host, govdoc.OutcomeFailed, []byte(html), err)
		return govdoc.Fail("listing links on government website", err)
	}

	seen := make(exactSet, len(links))
	var (
		lines   []string
		omitted int
	)
	for _, link := range links {
		if seen.TestAndAdd(link.URL) {
			continue
		}
		if !govdoc.IsAuthorized(n.Authorizer, link.URL) {
			omitted++
			continue
		}
		if len(lines) == n.maxLinks() {
			break
		}
		lines = append(lines, formatLink(link))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Authorized links on %s (%d):\n", decision.Host, len(lines))
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if omitted > 0 {
		fmt.Fprintf(&b, "(%d links to unauthorized domains omitted)\n", omitted)
	}

	l.record(ctx, ToolLinks, rawURL, decision.Host, govdoc.OutcomeVerified, []byte(html), nil)
	return govdoc.Annotate(strings.TrimRight(b.String(), "\n"), decision.Host, govdoc.SourcePage, 0)
}

// DiscoverSitemap lists the authorized page URLs published in the sitemaps
// of an authorized site.
func (n *Navigator) DiscoverSitemap(ctx context.Context, rawURL string) string {
	l := ledger{accesses: n.Accesses, logger: n.Logger}

	decision, err := n.Authorizer.Authorize(rawURL)
	if err != nil || !decision.Authorized {
		l.record(ctx, ToolSitemap, rawURL, decision.Host, govdoc.OutcomeRejected, nil, err)
		return govdoc.Reject(rejectedHost(decision, rawURL))
	}

	if err := wait(ctx, n.Limiter, decision.Host); err != nil {
		l.record(ctx, ToolSitemap, rawURL, decision.Host, govdoc.OutcomeFailed, nil, err)
		return govdoc.Fail("reading government sitemap", err)
	}

	urls, err := n.Sitemaps.DiscoverURLs(ctx, rawURL)
	if err != nil {
		l.record(ctx, ToolSitemap, rawURL, decision.Host, govdoc.OutcomeFailed, nil, err)
		return govdoc.Fail("reading government sitemap", err)
	}

	seen := n.urlSet(len(urls))
	var (
		kept    []string
		omitted int
		total   int
	)
	for _, u := range urls {
		if seen.TestAndAdd(u) {
			continue
		}
		if !govdoc.IsAuthorized(n.Authorizer, u) {
			omitted++
			continue
		}
		total++
		if len(kept) < n.maxLinks() {
			kept = append(kept, u)
		}
	}

	var b strings.Builder
	if total == 0 {
		fmt.Fprintf(&b, "No sitemap URLs found for %s.\n", decision.Host)
	} else {
		fmt.Fprintf(&b, "Sitemap URLs for %s (%d of %d):\n", decision.Host, len(kept), total)
		for _, u := range kept {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}
	if omitted > 0 {
		fmt.Fprintf(&b, "(%d URLs on unauthorized domains omitted)\n", omitted)
	}

	listing := strings.TrimRight(b.String(), "\n")
	l.record(ctx, ToolSitemap, rawURL, decision.Host, govdoc.OutcomeVerified, []byte(listing), nil)
	return govdoc.Annotate(listing, decision.Host, govdoc.SourcePage, 0)
}

func (n *Navigator) urlSet(size int) govdoc.URLSet {
	if n.NewURLSet != nil {
		return n.NewURLSet(size)
	}
	return make(exactSet, size)
}

func (n *Navigator) maxLinks() int {
	if n.MaxLinks > 0 {
		return n.MaxLinks
	}
	return DefaultMaxLinks
}

// formatLink renders one listing line, flagging PDF documents so callers
// know to use the document extractor for them.
func formatLink(link govdoc.Link) string {
	prefix := "-"
	if IsDocumentURL(link.URL) {
		prefix = "- [PDF]"
	}
	if link.Text == "" {
		return fmt.Sprintf("%s %s", prefix, link.URL)
	}
	return fmt.Sprintf("%s %s: %s", prefix, link.Text, link.URL)
}

// IsDocumentURL reports whether rawURL names a PDF by its path extension.
func IsDocumentURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".pdf")
}

// exactSet is a map-backed govdoc.URLSet.
type exactSet map[string]struct{}

func (s exactSet) TestAndAdd(url string) bool {
	if _, ok := s[url]; ok {
		return true
	}
	s[url] = struct{}{}
	return false
}
