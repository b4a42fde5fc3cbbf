// Package openai provides a govdoc.Summarizer backed by an Azure OpenAI
// chat deployment.
package openai

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/govdoc"
	openai "github.com/sashabaranov/go-openai"
)

// Defaults for the Azure deployment.
const (
	DefaultDeployment = "gpt-4"
	DefaultAPIVersion = "2024-02-01"
	DefaultTimeout    = 45 * time.Second
	DefaultMaxTokens  = 2000
	temperature       = 0.1
)

// ChatClient is the subset of *openai.Client used by Summarizer.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config describes an Azure OpenAI deployment.
type Config struct {
	APIKey     string
	Endpoint   string
	APIVersion string
	Deployment string
}

// NewAzureClient returns a chat client for the deployment in cfg.
// APIVersion and Deployment fall back to their defaults when empty.
func NewAzureClient(cfg Config) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, govdoc.Errorf(govdoc.EINVALID, "azure openai api key required")
	}
	if cfg.Endpoint == "" {
		return nil, govdoc.Errorf(govdoc.EINVALID, "azure openai endpoint required")
	}

	config := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		config.APIVersion = cfg.APIVersion
	} else {
		config.APIVersion = DefaultAPIVersion
	}
	deployment := cfg.Deployment
	if deployment == "" {
		deployment = DefaultDeployment
	}
	config.AzureModelMapperFunc = func(string) string { return deployment }

	return openai.NewClientWithConfig(config), nil
}

var _ govdoc.Summarizer = (*Summarizer)(nil)

// Summarizer implements govdoc.Summarizer with a chat completion.
type Summarizer struct {
	client    ChatClient
	model     string
	timeout   time.Duration
	maxTokens int
}

// NewSummarizer creates a new Summarizer. model names the deployment sent in
// the request; the Azure client maps it to the configured deployment.
func NewSummarizer(client ChatClient, model string) *Summarizer {
	if model == "" {
		model = DefaultDeployment
	}
	return &Summarizer{
		client:    client,
		model:     model,
		timeout:   DefaultTimeout,
		maxTokens: DefaultMaxTokens,
	}
}

// Summarize returns a bullet-point summary of text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", govdoc.Errorf(govdoc.EINVALID, "text required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: govdoc.SummaryPrompt(text)},
		},
		Temperature: temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", govdoc.Errorf(govdoc.EINTERNAL, "chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
