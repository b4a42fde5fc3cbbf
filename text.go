package govdoc

// DocumentParser decodes document bytes into plain text.
type DocumentParser interface {
	// Parse returns the text of every page in page order, pages joined
	// by a newline. Corrupt or unreadable documents return EPARSE.
	Parse(data []byte) (string, error)
}

// TextExtractor turns rendered HTML into plain text.
type TextExtractor interface {
	// ExtractText returns the text of the page without markup.
	// Script and style content is never part of the result.
	ExtractText(html string) (string, error)
}

// Link is a hyperlink found on a page.
type Link struct {
	URL  string
	Text string
}

// LinkExtractor extracts hyperlinks from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns absolute http(s) links in
	// document order, resolved against baseURL. Fragments are stripped.
	ExtractLinks(html string, baseURL string) ([]Link, error)
}

// URLSet remembers which URLs have been seen.
type URLSet interface {
	// TestAndAdd reports whether url was already in the set, then adds it.
	TestAndAdd(url string) bool
}
