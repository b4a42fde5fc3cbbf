package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/gemini"
	"github.com/fwojciec/govdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("returns error when text empty", func(t *testing.T) {
		t.Parallel()

		s := gemini.NewSummarizer(nil, nil)

		_, err := s.Summarize(context.Background(), "  \n")

		require.Error(t, err)
		assert.Equal(t, govdoc.EINVALID, govdoc.ErrorCode(err))
		assert.Equal(t, "text required", govdoc.ErrorMessage(err))
	})

	t.Run("counts the full prompt", func(t *testing.T) {
		t.Parallel()

		var counted string
		counter := &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				counted = text
				return 10, nil
			},
		}
		s := gemini.NewSummarizer(nil, counter)

		_, err := s.Summarize(context.Background(), "RBI circular text")

		// nil client fails after the budget check
		require.Error(t, err)
		assert.Equal(t, govdoc.EINTERNAL, govdoc.ErrorCode(err))
		assert.Equal(t, govdoc.SummaryPrompt("RBI circular text"), counted)
	})

	t.Run("rejects content over budget", func(t *testing.T) {
		t.Parallel()

		counter := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) { return 501, nil },
		}
		s := gemini.NewSummarizer(nil, counter, gemini.WithTokenBudget(500))

		_, err := s.Summarize(context.Background(), "long text")

		require.Error(t, err)
		assert.Equal(t, govdoc.EINVALID, govdoc.ErrorCode(err))
		assert.Contains(t, govdoc.ErrorMessage(err), "exceeds budget of 500")
	})

	t.Run("non-positive budget skips counting", func(t *testing.T) {
		t.Parallel()

		counter := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) {
				t.Fatal("CountTokens should not be called")
				return 0, nil
			},
		}
		s := gemini.NewSummarizer(nil, counter, gemini.WithTokenBudget(0))

		_, err := s.Summarize(context.Background(), "text")

		assert.Equal(t, govdoc.EINTERNAL, govdoc.ErrorCode(err))
	})

	t.Run("propagates counter error", func(t *testing.T) {
		t.Parallel()

		counter := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) {
				return 0, errors.New("tokenizer unavailable")
			},
		}
		s := gemini.NewSummarizer(nil, counter)

		_, err := s.Summarize(context.Background(), "text")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "tokenizer unavailable")
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "government")
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, *config.Temperature, 0.001)
	assert.Equal(t, int32(2000), config.MaxOutputTokens)
}
