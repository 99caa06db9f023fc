package model

import (
	"fmt"

	"banter/internal/config"
	"banter/internal/domain/services"
	"banter/internal/service/model/providers/echo"
	"banter/internal/service/model/providers/openai"
)

// NewProvider creates the model provider selected by the
// configuration.
//
// Supported providers:
//   - "openai" - any OpenAI-compatible endpoint (OpenAI, OpenRouter,
//     Ollama via OPENAI_BASE_URL)
//   - "echo" - deterministic mock for development (no API key)
func NewProvider(cfg *config.Config) (services.Provider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return openai.NewProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model), nil

	case "echo":
		return echo.NewProvider(), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
