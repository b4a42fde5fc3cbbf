package govdoc

import "context"

// SummaryInstruction prefixes the content handed to a language model.
const SummaryInstruction = "Summarize the following government content into clear bullet points:"

// SummaryPrompt returns the model prompt for summarizing text.
func SummaryPrompt(text string) string {
	return SummaryInstruction + "\n\n" + text
}

// Summarizer condenses verified government content using a language model.
type Summarizer interface {
	// Summarize returns a bullet-point summary of text.
	// Returns EINVALID if text is empty.
	Summarize(ctx context.Context, text string) (string, error)
}

// SearchResult is a single search hit.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher finds candidate government pages for a query.
// Results are not authorized; callers must check every URL.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}
