// Package chat implements the request orchestrators: one method per
// use case, each validating input and sequencing repository and model
// calls. Orchestrators are the only layer that talks to both.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"banter/internal/config"
	"banter/internal/domain"
	"banter/internal/domain/models"
	"banter/internal/domain/repositories"
	"banter/internal/domain/services"
)

// Service implements the ChatService interface
type Service struct {
	chatRepo repositories.ChatRepository
	model    services.ModelService
	logger   *slog.Logger
}

// NewService creates a new chat orchestration service
func NewService(
	chatRepo repositories.ChatRepository,
	model services.ModelService,
	logger *slog.Logger,
) services.ChatService {
	return &Service{
		chatRepo: chatRepo,
		model:    model,
		logger:   logger,
	}
}

// CreateChat creates a new empty chat session
func (s *Service) CreateChat(ctx context.Context, req *services.CreateChatRequest) (*models.Chat, error) {
	if err := s.validateCreateChatRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	chat, err := s.chatRepo.CreateChat(ctx, req.Title, req.ProjectID)
	if err != nil {
		return nil, err
	}

	return chat, nil
}

// ListChats lists all chats, optionally filtered by project
func (s *Service) ListChats(ctx context.Context, projectID string) ([]models.Chat, error) {
	if projectID != "" {
		return s.chatRepo.FilterByProject(ctx, projectID)
	}
	return s.chatRepo.ListChats(ctx)
}

// GetChat retrieves a single chat with its messages
func (s *Service) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	return s.chatRepo.GetChat(ctx, chatID)
}

// GetMessages retrieves a chat's messages in conversation order
func (s *Service) GetMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	return s.chatRepo.GetMessagesByChatID(ctx, chatID)
}

// SendMessage persists a user message to the chat
func (s *Service) SendMessage(ctx context.Context, req *services.SendMessageRequest) (*models.Message, error) {
	if err := s.validateSendMessageRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return s.chatRepo.CreateMessageForChat(ctx, req.ChatID, models.RoleUser, req.Content)
}

// GenerateReply feeds the chat's full history to the model and
// persists the assistant reply. A provider failure aborts the
// operation before any assistant message is written.
func (s *Service) GenerateReply(ctx context.Context, chatID string) (*models.Message, error) {
	history, err := s.chatRepo.GetMessagesByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	reply, err := s.model.GenerateReply(ctx, models.History(history))
	if err != nil {
		return nil, err
	}

	message, err := s.chatRepo.CreateMessageForChat(ctx, chatID, models.RoleAssistant, reply)
	if err != nil {
		return nil, err
	}

	s.logger.Info("assistant reply persisted",
		"chat_id", chatID,
		"message_id", message.ID,
	)

	return message, nil
}

// GenerateTitle derives a short title from the seed message and
// persists it. The new-chat hint flag is written best-effort after
// the title is durable; its failure never fails the request.
func (s *Service) GenerateTitle(ctx context.Context, req *services.GenerateTitleRequest) (*models.Chat, error) {
	if err := s.validateGenerateTitleRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Fail fast on unknown chats before spending a model call
	if _, err := s.chatRepo.GetChat(ctx, req.ChatID); err != nil {
		return nil, err
	}

	title, err := s.model.GenerateTitle(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.UpdateChatTitle(ctx, req.ChatID, title)
	if err != nil {
		return nil, err
	}

	if err := s.chatRepo.SetNewChatFlag(ctx, true); err != nil {
		s.logger.Warn("failed to set new-chat flag", "error", err)
	}

	s.logger.Info("chat title generated",
		"chat_id", chat.ID,
		"title", chat.Title,
	)

	return chat, nil
}

// Complete answers an inline message list without touching any
// persisted chat. The returned assistant message carries a fresh id
// but is not persisted.
func (s *Service) Complete(ctx context.Context, req *services.CompleteRequest) (*models.Message, error) {
	if err := s.validateCompleteRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	reply, err := s.model.GenerateReply(ctx, req.Messages)
	if err != nil {
		return nil, err
	}

	return &models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Validation methods

func (s *Service) validateCreateChatRequest(req *services.CreateChatRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Length(0, config.MaxChatTitleLength),
		),
		validation.Field(&req.ProjectID,
			validation.Length(0, config.MaxProjectIDLength),
			validation.By(notBlankIfSet),
		),
	)
}

func (s *Service) validateSendMessageRequest(req *services.SendMessageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content,
			validation.Required,
			validation.Length(1, config.MaxMessageContentLength),
		),
	)
}

func (s *Service) validateGenerateTitleRequest(req *services.GenerateTitleRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Message,
			validation.Required,
			validation.Length(1, config.MaxMessageContentLength),
		),
	)
}

func (s *Service) validateCompleteRequest(req *services.CompleteRequest) error {
	if len(req.Messages) == 0 {
		return fmt.Errorf("messages must be a non-empty list")
	}
	for i, turn := range req.Messages {
		if !turn.Role.Valid() {
			return fmt.Errorf("messages[%d]: unrecognized role %q", i, turn.Role)
		}
		if strings.TrimSpace(turn.Content) == "" {
			return fmt.Errorf("messages[%d]: content must not be empty", i)
		}
	}
	return nil
}

// notBlankIfSet rejects values that are non-empty but all whitespace
func notBlankIfSet(value interface{}) error {
	str, _ := value.(string)
	if str != "" && strings.TrimSpace(str) == "" {
		return fmt.Errorf("must not be blank")
	}
	return nil
}
