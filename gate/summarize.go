package gate

import (
	"context"
	"strings"

	"github.com/fwojciec/govdoc"
)

// Summarizer condenses verified content into bullet points.
type Summarizer struct {
	Summarizer govdoc.Summarizer
}

// Summarize returns the summary of text. Rejection and failure notices are
// not content and are refused.
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return govdoc.Fail("summarizing content", govdoc.Errorf(govdoc.EINVALID, "text required"))
	case govdoc.IsRejection(text), govdoc.IsFailure(text):
		return govdoc.Fail("summarizing content", govdoc.Errorf(govdoc.EINVALID, "input is a notice, not verified content"))
	}

	summary, err := s.Summarizer.Summarize(ctx, text)
	if err != nil {
		return govdoc.Fail("summarizing content", err)
	}
	return strings.TrimSpace(summary)
}
