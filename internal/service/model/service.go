// Package model implements the model invocation service: a stateless
// adapter over a language-model provider. It never mutates chat or
// message state; orchestrators write results back through the
// repository.
package model

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"banter/internal/domain"
	"banter/internal/domain/models"
	"banter/internal/domain/services"
)

// titleInstruction is the fixed prompt used to derive chat titles.
const titleInstruction = "You are a helpful assistant that generates concise, descriptive titles for chat conversations. Generate a title that captures the essence of the first message in 3 short words or less: %s"

// Service implements services.ModelService
type Service struct {
	provider services.Provider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewService creates a new model invocation service. A zero timeout
// disables the per-call deadline.
func NewService(provider services.Provider, timeout time.Duration, logger *slog.Logger) services.ModelService {
	return &Service{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// GenerateReply delegates the full ordered history to the provider
// and returns the trimmed completion text
func (s *Service) GenerateReply(ctx context.Context, history []models.Turn) (string, error) {
	if len(history) == 0 {
		return "", &domain.ValidationError{Message: "messages must be a non-empty list"}
	}

	text, err := s.complete(ctx, history)
	if err != nil {
		return "", err
	}

	s.logger.Debug("reply generated",
		"provider", s.provider.Name(),
		"history_len", len(history),
		"reply_len", len(text),
	)

	return text, nil
}

// GenerateTitle issues a single completion request with no prior
// history and returns the trimmed title text
func (s *Service) GenerateTitle(ctx context.Context, firstMessage string) (string, error) {
	if strings.TrimSpace(firstMessage) == "" {
		return "", &domain.ValidationError{Message: "message must not be empty"}
	}

	prompt := []models.Turn{
		{Role: models.RoleUser, Content: fmt.Sprintf(titleInstruction, firstMessage)},
	}

	title, err := s.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Debug("title generated",
		"provider", s.provider.Name(),
		"title", title,
	)

	return title, nil
}

// complete runs one provider call under the configured deadline.
// Provider failures and empty completions both surface as
// domain.ErrProvider; the core never retries.
func (s *Service) complete(ctx context.Context, turns []models.Turn) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.provider.Complete(ctx, turns)
	if err != nil {
		return "", &domain.ProviderError{Message: fmt.Sprintf("%s: %v", s.provider.Name(), err)}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &domain.ProviderError{Message: "provider returned an empty completion"}
	}

	return text, nil
}
