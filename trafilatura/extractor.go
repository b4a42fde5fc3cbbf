// Package trafilatura extracts the main content of a page using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/govdoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements govdoc.TextExtractor at compile time.
var _ govdoc.TextExtractor = (*Extractor)(nil)

// Extractor returns the main content of a page, dropping navigation,
// headers, footers and other boilerplate.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// ExtractText processes rendered HTML and returns its main text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", govdoc.Errorf(govdoc.EPARSE, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return "", govdoc.Errorf(govdoc.EPARSE, "extracting main content: %v", err)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" && result.ContentNode != nil {
		text = nodeText(result.ContentNode)
	}
	if text == "" {
		return "", govdoc.Errorf(govdoc.EPARSE, "no main content found")
	}

	if title := strings.TrimSpace(result.Metadata.Title); title != "" && !strings.HasPrefix(text, title) {
		text = title + "\n\n" + text
	}

	return text, nil
}

// nodeText flattens a content node to its text.
func nodeText(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
