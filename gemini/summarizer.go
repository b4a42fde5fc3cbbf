package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/govdoc"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTokenBudget bounds the prompt size accepted by Summarize.
const DefaultTokenBudget = 100_000

var _ govdoc.Summarizer = (*Summarizer)(nil)

// Summarizer implements govdoc.Summarizer using Google Gemini.
type Summarizer struct {
	client  *genai.Client
	counter govdoc.TokenCounter
	model   string
	budget  int
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// WithTokenBudget sets the maximum prompt size in tokens.
// A non-positive budget disables the check.
func WithTokenBudget(budget int) Option {
	return func(s *Summarizer) {
		s.budget = budget
	}
}

// NewSummarizer creates a new Summarizer. counter may be nil, in which case
// prompts are sent without a size check.
func NewSummarizer(client *genai.Client, counter govdoc.TokenCounter, opts ...Option) *Summarizer {
	s := &Summarizer{
		client:  client,
		counter: counter,
		model:   DefaultModel,
		budget:  DefaultTokenBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns a bullet-point summary of text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", govdoc.Errorf(govdoc.EINVALID, "text required")
	}

	prompt := govdoc.SummaryPrompt(text)

	if err := govdoc.FitTokenBudget(ctx, s.counter, prompt, s.budget); err != nil {
		return "", err
	}

	if s.client == nil {
		return "", govdoc.Errorf(govdoc.EINTERNAL, "gemini client not configured")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", govdoc.Errorf(govdoc.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You summarize official government documents. Use only the content provided and do not add facts.",
			}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 2000,
	}
}
