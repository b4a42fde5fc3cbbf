// Package goquery implements HTML text and link extraction using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/govdoc"
)

// Ensure TextExtractor implements govdoc.TextExtractor at compile time.
var _ govdoc.TextExtractor = (*TextExtractor)(nil)

// invisibleSelector matches elements whose content never renders as text.
const invisibleSelector = "script, style, noscript, template, svg, iframe, head"

// TextExtractor returns the visible text of a page.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText removes non-rendered elements and returns the remaining text.
// Runs of blank lines collapse to one and each line is trimmed.
func (e *TextExtractor) ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", govdoc.Errorf(govdoc.EPARSE, "failed to parse HTML: %v", err)
	}

	doc.Find(invisibleSelector).Remove()

	// Block elements end a line in rendered output.
	doc.Find("p, div, br, li, tr, h1, h2, h3, h4, h5, h6, section, article, header, footer, nav, table, ul, ol").
		Each(func(_ int, sel *goquery.Selection) {
			sel.AppendHtml("\n")
		})

	return collapse(doc.Text()), nil
}

// collapse trims each line, squeezes inner whitespace and drops empty lines.
func collapse(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
