// Package echo implements a deterministic model provider for
// development: it needs no API key and replies with a canned echo of
// the last turn. Never used as the canonical generation path.
package echo

import (
	"context"
	"fmt"

	"banter/internal/domain/models"
)

// Provider is a mock model capability
type Provider struct{}

// NewProvider creates a new echo provider
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "echo"
}

// Complete echoes the last turn's content
func (p *Provider) Complete(ctx context.Context, turns []models.Turn) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("no turns to echo")
	}

	last := turns[len(turns)-1]
	return fmt.Sprintf("You sent: %s. This is a mock response.", last.Content), nil
}
