// Package openai implements the model provider over any
// OpenAI-compatible chat-completions API, including OpenRouter and
// Ollama's /v1 endpoint.
package openai

import (
	"context"
	"fmt"

	gopenai "github.com/sashabaranov/go-openai"

	"banter/internal/domain/models"
)

// Provider talks to an OpenAI-compatible endpoint
type Provider struct {
	client *gopenai.Client
	model  string
}

// NewProvider creates a provider. baseURL is optional; when set it
// redirects the client to a compatible endpoint (e.g.
// http://localhost:11434/v1 for a local Ollama).
func NewProvider(apiKey, baseURL, model string) *Provider {
	cfg := gopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Provider{
		client: gopenai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai"
}

// Complete generates a single chat completion for the given turns
func (p *Provider) Complete(ctx context.Context, turns []models.Turn) (string, error) {
	messages := make([]gopenai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, gopenai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	response, err := p.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}
