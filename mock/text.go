package mock

import "github.com/fwojciec/govdoc"

var _ govdoc.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of govdoc.DocumentParser.
type DocumentParser struct {
	ParseFn func(data []byte) (string, error)
}

func (p *DocumentParser) Parse(data []byte) (string, error) {
	return p.ParseFn(data)
}

var _ govdoc.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of govdoc.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

var _ govdoc.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of govdoc.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]govdoc.Link, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]govdoc.Link, error) {
	return e.ExtractLinksFn(html, baseURL)
}
