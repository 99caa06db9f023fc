package repositories

import (
	"context"

	"banter/internal/domain/models"
)

// ChatRepository defines the interface for chat data access.
// It exclusively owns the durable representation of chats and
// messages; callers receive snapshots, never live references.
type ChatRepository interface {
	// ListChats retrieves all chats in stable (creation) order.
	// Returns empty slice if none exist.
	ListChats(ctx context.Context) ([]models.Chat, error)

	// CreateChat allocates a unique id and persists a new empty chat.
	// Title and projectID are optional.
	CreateChat(ctx context.Context, title, projectID string) (*models.Chat, error)

	// GetChat retrieves a chat by ID
	// Returns domain.ErrNotFound if not found
	GetChat(ctx context.Context, chatID string) (*models.Chat, error)

	// GetMessagesByChatID retrieves a chat's messages in append order
	// Returns domain.ErrNotFound if the chat does not exist
	GetMessagesByChatID(ctx context.Context, chatID string) ([]models.Message, error)

	// CreateMessageForChat appends a message to the chat's sequence
	// and refreshes the chat's updated_at.
	// Returns domain.ErrNotFound if the chat does not exist.
	// Concurrent appends against the same chat are serialized; no
	// write is ever silently lost.
	CreateMessageForChat(ctx context.Context, chatID string, role models.Role, content string) (*models.Message, error)

	// UpdateChatTitle sets the chat's title and refreshes updated_at
	// Returns domain.ErrNotFound if the chat does not exist
	UpdateChatTitle(ctx context.Context, chatID, title string) (*models.Chat, error)

	// FilterByProject retrieves chats whose project id equals the
	// argument. Returns empty slice if none match (never an error).
	FilterByProject(ctx context.Context, projectID string) ([]models.Chat, error)

	// SetNewChatFlag writes the process-wide "a new/untitled chat
	// exists" hint for downstream UI polling. Best-effort: failure or
	// staleness never affects chat/message correctness.
	SetNewChatFlag(ctx context.Context, value bool) error
}
