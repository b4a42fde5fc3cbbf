// Package pdf extracts plain text from PDF documents using ledongthuc/pdf.
package pdf

import (
	"bytes"
	"strings"

	"github.com/fwojciec/govdoc"
	"github.com/ledongthuc/pdf"
)

// Ensure Parser implements govdoc.DocumentParser at compile time.
var _ govdoc.DocumentParser = (*Parser)(nil)

// Parser converts PDF bytes into text, one page after another.
// Parser is stateless and safe for concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the text of each page in page order joined by "\n".
// Pages without extractable text contribute an empty line. Malformed
// documents return EPARSE; panics inside the PDF decoder are recovered and
// reported the same way.
func (p *Parser) Parse(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", govdoc.Errorf(govdoc.EPARSE, "empty document")
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = govdoc.Errorf(govdoc.EPARSE, "corrupt document: %v", r)
		}
	}()

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", govdoc.Errorf(govdoc.EPARSE, "opening document: %v", err)
	}

	n := doc.NumPage()
	if n == 0 {
		return "", govdoc.Errorf(govdoc.EPARSE, "document has no pages")
	}

	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", govdoc.Errorf(govdoc.EPARSE, "reading page %d: %v", i, err)
		}
		pages = append(pages, strings.TrimRight(content, "\n"))
	}

	return strings.Join(pages, "\n"), nil
}
