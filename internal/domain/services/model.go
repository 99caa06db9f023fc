package services

import (
	"context"

	"banter/internal/domain/models"
)

// ModelService wraps the language-model capability. It is a pure
// adapter: stateless between calls, no caching, no streaming, and it
// never mutates chat or message state.
type ModelService interface {
	// GenerateReply delegates the full ordered history to the model
	// and returns the trimmed completion text.
	// Returns domain.ErrValidation if history is empty (before any
	// provider call) and domain.ErrProvider on provider failure or
	// an empty completion.
	GenerateReply(ctx context.Context, history []models.Turn) (string, error)

	// GenerateTitle issues a single completion request asking for a
	// concise title (at most three words) for the first message.
	// Never returns an empty string; an empty completion surfaces as
	// domain.ErrProvider.
	GenerateTitle(ctx context.Context, firstMessage string) (string, error)
}

// Provider defines the interface that all model providers implement.
// The underlying capability is a black box: given a list of
// role/content turns, return generated text.
type Provider interface {
	// Complete generates a single completion for the given turns
	Complete(ctx context.Context, turns []models.Turn) (string, error)

	// Name returns the provider name (e.g. "openai", "echo")
	Name() string
}
