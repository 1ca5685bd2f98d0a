package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyCompletion marks a provider response with no usable content.
var ErrEmptyCompletion = errors.New("completion returned no content")

// CompletionClient is the single integration point with the
// text-completion provider.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type OpenAIClient struct {
	llm llms.Model
}

func NewOpenAIClient(model, apiKey string) (*OpenAIClient, error) {
	llm, err := openai.New(openai.WithModel(model), openai.WithToken(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return &OpenAIClient{llm: llm}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
