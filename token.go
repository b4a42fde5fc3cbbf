package govdoc

import (
	"context"
	"fmt"
)

// TokenCounter counts the tokens a prompt costs a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// FitTokenBudget returns an EINVALID error naming both figures when prompt
// costs more than budget tokens. A nil counter or a non-positive budget
// admits every prompt without counting.
func FitTokenBudget(ctx context.Context, c TokenCounter, prompt string, budget int) error {
	if c == nil || budget <= 0 {
		return nil
	}
	n, err := c.CountTokens(ctx, prompt)
	if err != nil {
		return fmt.Errorf("counting tokens: %w", err)
	}
	if n > budget {
		return Errorf(EINVALID, "content is %d tokens, exceeds budget of %d", n, budget)
	}
	return nil
}
