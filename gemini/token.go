package gemini

import (
	"context"

	"github.com/fwojciec/govdoc"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ govdoc.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes summarization requests offline with the local Gemini
// tokenizer. Counts include the summarizer's system instruction, so a prompt
// is measured the way Summarize sends it.
type TokenCounter struct {
	tok    *tokenizer.LocalTokenizer
	config *genai.CountTokensConfig
}

// NewTokenCounter loads the tokenizer for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, govdoc.Errorf(govdoc.EINTERNAL, "loading %s tokenizer: %v", model, err)
	}
	return &TokenCounter{
		tok:    tok,
		config: &genai.CountTokensConfig{SystemInstruction: BuildConfig().SystemInstruction},
	}, nil
}

// CountTokens returns the tokens a summarization request for prompt costs.
// An empty prompt costs nothing.
func (tc *TokenCounter) CountTokens(ctx context.Context, prompt string) (int, error) {
	if prompt == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(prompt, "user")}, tc.config)
	if err != nil {
		return 0, govdoc.Errorf(govdoc.EINTERNAL, "counting tokens: %v", err)
	}
	return int(result.TotalTokens), nil
}
