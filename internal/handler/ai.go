package handler

import (
	"log/slog"
	"net/http"

	"banter/internal/domain/services"
	"banter/internal/httputil"
)

// AIHandler handles the chat-agnostic completion endpoint
type AIHandler struct {
	chatService services.ChatService
	logger      *slog.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(chatService services.ChatService, logger *slog.Logger) *AIHandler {
	return &AIHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Complete answers an inline message list with an assistant message
// that is never persisted
// POST /api/ai
func (h *AIHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req services.CompleteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := h.chatService.Complete(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, message)
}
