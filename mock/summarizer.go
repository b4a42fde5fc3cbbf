package mock

import (
	"context"

	"github.com/fwojciec/govdoc"
)

var _ govdoc.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of govdoc.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.SummarizeFn(ctx, text)
}

var _ govdoc.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of govdoc.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]govdoc.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]govdoc.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}

var _ govdoc.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of govdoc.TokenCounter for sizing
// summarizer prompts.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
