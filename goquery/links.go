package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/govdoc"
)

// Ensure LinkExtractor implements govdoc.LinkExtractor at compile time.
var _ govdoc.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts anchors from HTML.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns every http(s) anchor in document order. Relative
// hrefs are resolved against baseURL and fragments are stripped. Links that
// point back at the page itself are skipped. Duplicates are kept; callers
// decide how to de-duplicate.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]govdoc.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, govdoc.Errorf(govdoc.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, govdoc.Errorf(govdoc.EPARSE, "failed to parse HTML: %v", err)
	}

	// A <base href> overrides the document URL for relative links.
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	var links []govdoc.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		links = append(links, govdoc.Link{
			URL:  resolved,
			Text: strings.Join(strings.Fields(sel.Text()), " "),
		})
	})

	return links, nil
}

// resolveURL resolves href against base and strips the fragment.
// Returns empty string if href cannot be parsed, resolves to a non-http(s)
// scheme, or points back at base itself.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	baseNoFragment.RawFragment = ""
	result := resolved.String()
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
