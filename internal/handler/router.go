package handler

import (
	"net/http"
)

// NewRouter registers all routes on a fresh ServeMux (Go 1.22+
// method patterns). cmd/server and the handler tests share this
// surface.
func NewRouter(chatHandler *ChatHandler, aiHandler *AIHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", chatHandler.HealthCheck)

	// Chat routes
	mux.HandleFunc("GET /api/chats", chatHandler.ListChats)
	mux.HandleFunc("POST /api/chats", chatHandler.CreateChat)
	mux.HandleFunc("GET /api/chats/{id}", chatHandler.GetChat)
	mux.HandleFunc("GET /api/chats/{id}/messages", chatHandler.GetMessages)
	mux.HandleFunc("POST /api/chats/{id}/messages", chatHandler.SendMessage)
	mux.HandleFunc("POST /api/chats/{id}/messages/generate", chatHandler.GenerateReply)
	mux.HandleFunc("POST /api/chats/{id}/title", chatHandler.GenerateTitle)

	// Standalone completion route
	mux.HandleFunc("POST /api/ai", aiHandler.Complete)

	return mux
}
