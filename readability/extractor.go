// Package readability extracts article text from a page using go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/govdoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements govdoc.TextExtractor at compile time.
var _ govdoc.TextExtractor = (*Extractor)(nil)

// Extractor returns the article body of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes rendered HTML and returns the article title followed
// by its text content.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", govdoc.Errorf(govdoc.EPARSE, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", govdoc.Errorf(govdoc.EPARSE, "extracting article: %v", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if title := strings.TrimSpace(article.Title); title != "" && !strings.HasPrefix(text, title) {
		text = title + "\n\n" + text
	}
	return text, nil
}
