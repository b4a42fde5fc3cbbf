// Package htmltomarkdown renders page text as Markdown using html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/govdoc"
)

// Ensure Converter implements govdoc.TextExtractor at compile time.
var _ govdoc.TextExtractor = (*Converter)(nil)

// Converter turns rendered HTML into Markdown, keeping headings, lists,
// links and tables that plain text would flatten.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// ExtractText transforms HTML content into Markdown.
func (c *Converter) ExtractText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", govdoc.Errorf(govdoc.EPARSE, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", govdoc.Errorf(govdoc.EPARSE, "converting to markdown: %v", err)
	}

	return strings.TrimSpace(result), nil
}
