package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"banter/internal/domain"
	"banter/internal/domain/models"
	"banter/internal/domain/services"
	"banter/internal/repository/kv"
	"banter/internal/storage"
)

// stubModel is a deterministic model service that records calls
type stubModel struct {
	reply      string
	title      string
	err        error
	replyCalls int
	titleCalls int
}

func (m *stubModel) GenerateReply(ctx context.Context, history []models.Turn) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("%w: messages must be a non-empty list", domain.ErrValidation)
	}
	m.replyCalls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *stubModel) GenerateTitle(ctx context.Context, firstMessage string) (string, error) {
	m.titleCalls++
	if m.err != nil {
		return "", m.err
	}
	return m.title, nil
}

func newTestService(model *stubModel) (services.ChatService, storage.Store) {
	store := storage.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := kv.NewChatRepository(store, logger)
	return NewService(repo, model, logger), store
}

func TestCreateChat_Defaults(t *testing.T) {
	service, _ := newTestService(&stubModel{})
	ctx := context.Background()

	chat, err := service.CreateChat(ctx, &services.CreateChatRequest{})
	if err != nil {
		t.Fatalf("CreateChat failed: %v", err)
	}
	if chat.Title != "" || len(chat.Messages) != 0 {
		t.Errorf("expected empty chat, got title=%q messages=%d", chat.Title, len(chat.Messages))
	}
}

func TestCreateChat_BlankProjectID(t *testing.T) {
	service, _ := newTestService(&stubModel{})

	_, err := service.CreateChat(context.Background(), &services.CreateChatRequest{ProjectID: "  "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListChats_ProjectFilter(t *testing.T) {
	service, _ := newTestService(&stubModel{})
	ctx := context.Background()

	service.CreateChat(ctx, &services.CreateChatRequest{ProjectID: "p1"})
	service.CreateChat(ctx, &services.CreateChatRequest{ProjectID: "p2"})
	service.CreateChat(ctx, &services.CreateChatRequest{})

	all, err := service.ListChats(ctx, "")
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 chats, got %d", len(all))
	}

	filtered, err := service.ListChats(ctx, "p1")
	if err != nil {
		t.Fatalf("filtered ListChats failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ProjectID != "p1" {
		t.Errorf("expected only the p1 chat, got %d", len(filtered))
	}
}

func TestSendMessage(t *testing.T) {
	service, _ := newTestService(&stubModel{})
	ctx := context.Background()

	chat, _ := service.CreateChat(ctx, &services.CreateChatRequest{})

	message, err := service.SendMessage(ctx, &services.SendMessageRequest{
		ChatID:  chat.ID,
		Content: "Hello",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if message.Role != models.RoleUser {
		t.Errorf("expected user role, got %q", message.Role)
	}
	if message.ChatID != chat.ID {
		t.Errorf("expected chat back-reference, got %q", message.ChatID)
	}
}

func TestSendMessage_EmptyContent(t *testing.T) {
	service, _ := newTestService(&stubModel{})

	_, err := service.SendMessage(context.Background(), &services.SendMessageRequest{
		ChatID: "whatever",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGenerateReply_PersistsAssistantMessage(t *testing.T) {
	model := &stubModel{reply: "Hello!"}
	service, _ := newTestService(model)
	ctx := context.Background()

	chat, _ := service.CreateChat(ctx, &services.CreateChatRequest{})
	service.SendMessage(ctx, &services.SendMessageRequest{ChatID: chat.ID, Content: "Hi"})

	message, err := service.GenerateReply(ctx, chat.ID)
	if err != nil {
		t.Fatalf("GenerateReply failed: %v", err)
	}
	if message.Role != models.RoleAssistant || message.Content != "Hello!" {
		t.Errorf("unexpected assistant message: %+v", message)
	}

	messages, _ := service.GetMessages(ctx, chat.ID)
	if len(messages) != 2 {
		t.Fatalf("expected user + assistant messages, got %d", len(messages))
	}
	if messages[1].Role != models.RoleAssistant {
		t.Errorf("assistant message out of order: %+v", messages[1])
	}
}

func TestGenerateReply_EmptyChat(t *testing.T) {
	model := &stubModel{reply: "Hello!"}
	service, _ := newTestService(model)
	ctx := context.Background()

	chat, _ := service.CreateChat(ctx, &services.CreateChatRequest{})

	_, err := service.GenerateReply(ctx, chat.ID)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty history, got %v", err)
	}
	if model.replyCalls != 0 {
		t.Error("model was invoked for an empty chat")
	}
}

func TestGenerateReply_UnknownChat(t *testing.T) {
	service, _ := newTestService(&stubModel{reply: "Hello!"})

	_, err := service.GenerateReply(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateReply_ProviderFailureWritesNothing(t *testing.T) {
	model := &stubModel{err: fmt.Errorf("%w: upstream 500", domain.ErrProvider)}
	service, _ := newTestService(model)
	ctx := context.Background()

	chat, _ := service.CreateChat(ctx, &services.CreateChatRequest{})
	service.SendMessage(ctx, &services.SendMessageRequest{ChatID: chat.ID, Content: "Hi"})

	_, err := service.GenerateReply(ctx, chat.ID)
	if !errors.Is(err, domain.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}

	messages, _ := service.GetMessages(ctx, chat.ID)
	if len(messages) != 1 {
		t.Fatalf("failed generation persisted an assistant message: %d messages", len(messages))
	}
}

func TestGenerateTitle(t *testing.T) {
	model := &stubModel{title: "Japan Trip Plan"}
	service, store := newTestService(model)
	ctx := context.Background()

	chat, _ := service.CreateChat(ctx, &services.CreateChatRequest{})

	updated, err := service.GenerateTitle(ctx, &services.GenerateTitleRequest{
		ChatID:  chat.ID,
		Message: "Plan a trip to Japan",
	})
	if err != nil {
		t.Fatalf("GenerateTitle failed: %v", err)
	}
	if updated.Title != "Japan Trip Plan" {
		t.Errorf("expected generated title, got %q", updated.Title)
	}

	// The new-chat hint flag is written after the title is durable
	if _, err := store.Get(ctx, "chats:has-new-chat"); err != nil {
		t.Errorf("new-chat flag was not written: %v", err)
	}
}

func TestGenerateTitle_UnknownChatSkipsModel(t *testing.T) {
	model := &stubModel{title: "unused"}
	service, _ := newTestService(model)

	_, err := service.GenerateTitle(context.Background(), &services.GenerateTitleRequest{
		ChatID:  "nope",
		Message: "Plan a trip to Japan",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if model.titleCalls != 0 {
		t.Error("model was invoked for an unknown chat")
	}
}

func TestGenerateTitle_EmptyMessage(t *testing.T) {
	service, _ := newTestService(&stubModel{})

	_, err := service.GenerateTitle(context.Background(), &services.GenerateTitleRequest{
		ChatID: "whatever",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	model := &stubModel{reply: "Hi!"}
	service, _ := newTestService(model)

	message, err := service.Complete(context.Background(), &services.CompleteRequest{
		Messages: []models.Turn{{Role: models.RoleUser, Content: "Hello"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if message.ID == "" {
		t.Error("expected a generated message id")
	}
	if message.Role != models.RoleAssistant || message.Content != "Hi!" {
		t.Errorf("unexpected completion message: %+v", message)
	}
	if message.ChatID != "" {
		t.Errorf("completion must not belong to a chat, got chat id %q", message.ChatID)
	}
}

func TestComplete_Validation(t *testing.T) {
	model := &stubModel{reply: "unused"}
	service, _ := newTestService(model)
	ctx := context.Background()

	tests := []struct {
		name     string
		messages []models.Turn
	}{
		{"empty list", nil},
		{"bad role", []models.Turn{{Role: "robot", Content: "hi"}}},
		{"blank content", []models.Turn{{Role: models.RoleUser, Content: "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Complete(ctx, &services.CompleteRequest{Messages: tt.messages})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
	if model.replyCalls != 0 {
		t.Error("model was invoked for invalid input")
	}
}
