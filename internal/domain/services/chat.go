package services

import (
	"context"

	"banter/internal/domain/models"
)

// CreateChatRequest is the input for creating a chat session
type CreateChatRequest struct {
	Title     string `json:"title"`
	ProjectID string `json:"projectId"`
}

// SendMessageRequest is the input for persisting a user message
type SendMessageRequest struct {
	ChatID  string `json:"-"`
	Content string `json:"content"`
}

// GenerateTitleRequest is the input for deriving a chat title from a
// seed message
type GenerateTitleRequest struct {
	ChatID  string `json:"-"`
	Message string `json:"message"`
}

// CompleteRequest is the input for the chat-agnostic completion
// operation: an inline ordered message list
type CompleteRequest struct {
	Messages []models.Turn `json:"messages"`
}

// ChatService defines the request orchestrators: each method
// validates input, sequences repository and model calls, and shapes
// the response. Orchestrators are the only callers of both the
// repository and the model service.
type ChatService interface {
	// CreateChat creates a new empty chat (no title, no messages)
	CreateChat(ctx context.Context, req *CreateChatRequest) (*models.Chat, error)

	// ListChats lists all chats; projectID, when non-empty, filters
	// to chats filed under that project
	ListChats(ctx context.Context, projectID string) ([]models.Chat, error)

	// GetChat retrieves a single chat with its messages
	GetChat(ctx context.Context, chatID string) (*models.Chat, error)

	// GetMessages retrieves a chat's messages in conversation order
	GetMessages(ctx context.Context, chatID string) ([]models.Message, error)

	// SendMessage persists a user message to the chat
	SendMessage(ctx context.Context, req *SendMessageRequest) (*models.Message, error)

	// GenerateReply feeds the chat's full history to the model and
	// persists the assistant reply. A failed generation never writes
	// an assistant message.
	GenerateReply(ctx context.Context, chatID string) (*models.Message, error)

	// GenerateTitle derives a short title from the seed message,
	// persists it, and best-effort flips the new-chat hint flag
	GenerateTitle(ctx context.Context, req *GenerateTitleRequest) (*models.Chat, error)

	// Complete answers an inline message list without touching any
	// persisted chat. The returned message is not persisted.
	Complete(ctx context.Context, req *CompleteRequest) (*models.Message, error)
}
