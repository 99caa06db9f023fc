// Package kv implements the chat repository on top of the opaque
// key-value storage adapter. Each chat is one record with its
// messages embedded; a separate index record makes enumeration
// possible with get/set only.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"banter/internal/config"
	"banter/internal/domain"
	"banter/internal/domain/models"
	"banter/internal/domain/repositories"
	"banter/internal/storage"
)

const (
	chatKeyPrefix  = "chats:"
	chatIndexKey   = "chats:index"
	newChatFlagKey = "chats:has-new-chat"
)

// ChatRepository implements repositories.ChatRepository over a Store.
//
// Mutations are read-modify-write; a per-chat mutex serializes them so
// two concurrent appends against the same chat never lose a write.
// The index record has its own lock. Locks are in-process: a store
// shared by multiple server processes needs an external arrangement,
// which is outside this core.
type ChatRepository struct {
	store  storage.Store
	logger *slog.Logger

	indexMu sync.Mutex
	chatMu  sync.Map // chat id -> *sync.Mutex
}

// NewChatRepository creates a new KV-backed chat repository
func NewChatRepository(store storage.Store, logger *slog.Logger) repositories.ChatRepository {
	return &ChatRepository{
		store:  store,
		logger: logger,
	}
}

// lockChat returns the held mutex for a chat id; caller must Unlock
func (r *ChatRepository) lockChat(chatID string) *sync.Mutex {
	mu, _ := r.chatMu.LoadOrStore(chatID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m
}

func chatKey(chatID string) string {
	return chatKeyPrefix + chatID
}

// loadChat reads and decodes a chat record.
// Returns domain.ErrNotFound if the key is absent.
func (r *ChatRepository) loadChat(ctx context.Context, chatID string) (*models.Chat, error) {
	data, err := r.store.Get(ctx, chatKey(chatID))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("chat %s not found", chatID)}
		}
		return nil, fmt.Errorf("load chat %s: %w", chatID, err)
	}

	var chat models.Chat
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, &domain.StorageError{Message: fmt.Sprintf("decode chat %s: %v", chatID, err)}
	}
	if chat.Messages == nil {
		chat.Messages = []models.Message{}
	}

	return &chat, nil
}

// saveChat encodes and writes a chat record
func (r *ChatRepository) saveChat(ctx context.Context, chat *models.Chat) error {
	data, err := json.Marshal(chat)
	if err != nil {
		return &domain.StorageError{Message: fmt.Sprintf("encode chat %s: %v", chat.ID, err)}
	}
	if err := r.store.Set(ctx, chatKey(chat.ID), data); err != nil {
		return fmt.Errorf("save chat %s: %w", chat.ID, err)
	}
	return nil
}

// loadIndex reads the ordered list of chat ids; absent index means no
// chats have been created yet
func (r *ChatRepository) loadIndex(ctx context.Context) ([]string, error) {
	data, err := r.store.Get(ctx, chatIndexKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("load chat index: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, &domain.StorageError{Message: fmt.Sprintf("decode chat index: %v", err)}
	}
	return ids, nil
}

// ListChats retrieves all chats in creation order
func (r *ChatRepository) ListChats(ctx context.Context) ([]models.Chat, error) {
	ids, err := r.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	chats := make([]models.Chat, 0, len(ids))
	for _, id := range ids {
		chat, err := r.loadChat(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Tolerate an index entry whose record was removed
				// out of band; skip rather than fail the listing.
				r.logger.Warn("chat index references missing record", "chat_id", id)
				continue
			}
			return nil, err
		}
		chats = append(chats, *chat)
	}

	return chats, nil
}

// CreateChat allocates a unique id and persists a new empty chat.
// Ids are random uuids, collision-free under concurrent creation.
func (r *ChatRepository) CreateChat(ctx context.Context, title, projectID string) (*models.Chat, error) {
	if projectID != "" && strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("%w: project id must be a non-empty string", domain.ErrValidation)
	}

	now := time.Now().UTC()
	chat := &models.Chat{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		ProjectID: projectID,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The index lock covers both writes so concurrent creations never
	// drop each other's index entry.
	r.indexMu.Lock()
	defer r.indexMu.Unlock()

	if err := r.saveChat(ctx, chat); err != nil {
		return nil, err
	}

	ids, err := r.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	ids = append(ids, chat.ID)

	data, err := json.Marshal(ids)
	if err != nil {
		return nil, &domain.StorageError{Message: fmt.Sprintf("encode chat index: %v", err)}
	}
	if err := r.store.Set(ctx, chatIndexKey, data); err != nil {
		return nil, fmt.Errorf("save chat index: %w", err)
	}

	r.logger.Info("chat created",
		"id", chat.ID,
		"project_id", chat.ProjectID,
	)

	return chat, nil
}

// GetChat retrieves a chat by ID
func (r *ChatRepository) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	return r.loadChat(ctx, chatID)
}

// GetMessagesByChatID retrieves a chat's messages in append order
func (r *ChatRepository) GetMessagesByChatID(ctx context.Context, chatID string) ([]models.Message, error) {
	chat, err := r.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return chat.Messages, nil
}

// CreateMessageForChat appends a message to the chat's sequence.
// Validation runs before any storage read so a rejected request never
// touches the store.
func (r *ChatRepository) CreateMessageForChat(ctx context.Context, chatID string, role models.Role, content string) (*models.Message, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unrecognized role %q", domain.ErrValidation, role)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content must not be empty", domain.ErrValidation)
	}
	if len(content) > config.MaxMessageContentLength {
		return nil, fmt.Errorf("%w: message content exceeds %d characters", domain.ErrValidation, config.MaxMessageContentLength)
	}

	mu := r.lockChat(chatID)
	defer mu.Unlock()

	chat, err := r.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	message := models.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}

	chat.Messages = append(chat.Messages, message)
	chat.UpdatedAt = now

	if err := r.saveChat(ctx, chat); err != nil {
		return nil, err
	}

	r.logger.Info("message appended",
		"chat_id", chatID,
		"message_id", message.ID,
		"role", role,
	)

	return &message, nil
}

// UpdateChatTitle sets the chat's title and refreshes updated_at
func (r *ChatRepository) UpdateChatTitle(ctx context.Context, chatID, title string) (*models.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if len(title) > config.MaxChatTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, config.MaxChatTitleLength)
	}

	mu := r.lockChat(chatID)
	defer mu.Unlock()

	chat, err := r.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	chat.Title = title
	chat.UpdatedAt = time.Now().UTC()

	if err := r.saveChat(ctx, chat); err != nil {
		return nil, err
	}

	r.logger.Info("chat title updated",
		"chat_id", chatID,
		"title", title,
	)

	return chat, nil
}

// FilterByProject retrieves chats filed under the given project
func (r *ChatRepository) FilterByProject(ctx context.Context, projectID string) ([]models.Chat, error) {
	chats, err := r.ListChats(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Chat, 0, len(chats))
	for _, chat := range chats {
		if chat.ProjectID == projectID {
			filtered = append(filtered, chat)
		}
	}
	return filtered, nil
}

// SetNewChatFlag writes the UI hint flag
func (r *ChatRepository) SetNewChatFlag(ctx context.Context, value bool) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &domain.StorageError{Message: fmt.Sprintf("encode new-chat flag: %v", err)}
	}
	if err := r.store.Set(ctx, newChatFlagKey, data); err != nil {
		return fmt.Errorf("save new-chat flag: %w", err)
	}
	return nil
}
