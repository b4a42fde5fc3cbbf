package govdoc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTokenBudget(t *testing.T) {
	t.Parallel()

	counter := func(n int, err error) *mock.TokenCounter {
		return &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) { return n, err },
		}
	}

	t.Run("admits prompts within budget", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, govdoc.FitTokenBudget(context.Background(), counter(500, nil), "notice", 500))
	})

	t.Run("refuses prompts over budget", func(t *testing.T) {
		t.Parallel()

		err := govdoc.FitTokenBudget(context.Background(), counter(501, nil), "notice", 500)

		require.Error(t, err)
		assert.Equal(t, govdoc.EINVALID, govdoc.ErrorCode(err))
		assert.Equal(t, "content is 501 tokens, exceeds budget of 500", govdoc.ErrorMessage(err))
	})

	t.Run("skips counting without a counter or budget", func(t *testing.T) {
		t.Parallel()

		never := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) {
				t.Fatal("CountTokens should not be called")
				return 0, nil
			},
		}

		assert.NoError(t, govdoc.FitTokenBudget(context.Background(), nil, "notice", 10))
		assert.NoError(t, govdoc.FitTokenBudget(context.Background(), never, "notice", 0))
	})

	t.Run("wraps counter errors", func(t *testing.T) {
		t.Parallel()

		err := govdoc.FitTokenBudget(context.Background(), counter(0, errors.New("tokenizer unavailable")), "notice", 10)

		require.Error(t, err)
		assert.Equal(t, "counting tokens: tokenizer unavailable", err.Error())
	})
}
