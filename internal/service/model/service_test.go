package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"banter/internal/domain"
	"banter/internal/domain/models"
)

// stubProvider is a deterministic model capability that records the
// turns it was called with
type stubProvider struct {
	reply string
	err   error
	calls [][]models.Turn
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(ctx context.Context, turns []models.Turn) (string, error) {
	p.calls = append(p.calls, turns)
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func newTestService(provider *stubProvider) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(provider, 0, logger).(*Service)
}

func TestGenerateReply_EmptyHistory(t *testing.T) {
	provider := &stubProvider{reply: "unused"}
	service := newTestService(provider)

	_, err := service.GenerateReply(context.Background(), nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(provider.calls) != 0 {
		t.Errorf("provider was invoked despite empty history: %d calls", len(provider.calls))
	}
}

func TestGenerateReply_TrimsCompletion(t *testing.T) {
	provider := &stubProvider{reply: "  Hello there!  \n"}
	service := newTestService(provider)

	history := []models.Turn{{Role: models.RoleUser, Content: "Hi"}}
	reply, err := service.GenerateReply(context.Background(), history)
	if err != nil {
		t.Fatalf("GenerateReply failed: %v", err)
	}
	if reply != "Hello there!" {
		t.Errorf("expected trimmed reply, got %q", reply)
	}
}

func TestGenerateReply_PassesFullHistory(t *testing.T) {
	provider := &stubProvider{reply: "ok"}
	service := newTestService(provider)

	history := []models.Turn{
		{Role: models.RoleSystem, Content: "be brief"},
		{Role: models.RoleUser, Content: "Hi"},
		{Role: models.RoleAssistant, Content: "Hello"},
		{Role: models.RoleUser, Content: "Bye"},
	}
	if _, err := service.GenerateReply(context.Background(), history); err != nil {
		t.Fatalf("GenerateReply failed: %v", err)
	}

	if len(provider.calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(provider.calls))
	}
	got := provider.calls[0]
	if len(got) != len(history) {
		t.Fatalf("expected %d turns forwarded, got %d", len(history), len(got))
	}
	for i := range history {
		if got[i] != history[i] {
			t.Errorf("turn %d reordered or altered: %+v", i, got[i])
		}
	}
}

func TestGenerateReply_ProviderError(t *testing.T) {
	provider := &stubProvider{err: fmt.Errorf("connection refused")}
	service := newTestService(provider)

	history := []models.Turn{{Role: models.RoleUser, Content: "Hi"}}
	_, err := service.GenerateReply(context.Background(), history)
	if !errors.Is(err, domain.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestGenerateReply_EmptyCompletion(t *testing.T) {
	provider := &stubProvider{reply: "   \n\t "}
	service := newTestService(provider)

	history := []models.Turn{{Role: models.RoleUser, Content: "Hi"}}
	_, err := service.GenerateReply(context.Background(), history)
	if !errors.Is(err, domain.ErrProvider) {
		t.Fatalf("expected ErrProvider for empty completion, got %v", err)
	}
}

func TestGenerateTitle(t *testing.T) {
	provider := &stubProvider{reply: " Japan Trip Plan \n"}
	service := newTestService(provider)

	title, err := service.GenerateTitle(context.Background(), "Plan a trip to Japan")
	if err != nil {
		t.Fatalf("GenerateTitle failed: %v", err)
	}
	if title != "Japan Trip Plan" {
		t.Errorf("expected trimmed title, got %q", title)
	}

	// A single completion request with no prior history
	if len(provider.calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(provider.calls))
	}
	prompt := provider.calls[0]
	if len(prompt) != 1 {
		t.Fatalf("expected a single prompt turn, got %d", len(prompt))
	}
	if prompt[0].Role != models.RoleUser {
		t.Errorf("expected user role, got %q", prompt[0].Role)
	}
	if !strings.Contains(prompt[0].Content, "Plan a trip to Japan") {
		t.Error("prompt does not include the first message")
	}
	if !strings.Contains(prompt[0].Content, "3 short words or less") {
		t.Error("prompt does not carry the title instruction")
	}
}

func TestGenerateTitle_EmptyMessage(t *testing.T) {
	provider := &stubProvider{reply: "unused"}
	service := newTestService(provider)

	_, err := service.GenerateTitle(context.Background(), "  ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(provider.calls) != 0 {
		t.Error("provider was invoked for an empty message")
	}
}

func TestGenerateTitle_EmptyCompletion(t *testing.T) {
	provider := &stubProvider{reply: ""}
	service := newTestService(provider)

	_, err := service.GenerateTitle(context.Background(), "Plan a trip to Japan")
	if !errors.Is(err, domain.ErrProvider) {
		t.Fatalf("expected ErrProvider for empty title, got %v", err)
	}
}
