package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"banter/internal/config"
	"banter/internal/handler"
	"banter/internal/middleware"
	"banter/internal/repository/kv"
	chatSvc "banter/internal/service/chat"
	modelSvc "banter/internal/service/model"
	"banter/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration (env first, then optional YAML overrides)
	cfg := config.Load()
	if err := cfg.LoadFile(os.Getenv("CONFIG_FILE")); err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_driver", cfg.StorageDriver,
		"provider", cfg.Provider,
	)

	// Open the storage adapter
	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	logger.Info("storage opened", "driver", cfg.StorageDriver)

	// Create repository
	chatRepo := kv.NewChatRepository(store, logger)

	// Setup model provider and invocation service
	provider, err := modelSvc.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to setup model provider: %v", err)
	}
	modelService := modelSvc.NewService(
		provider,
		time.Duration(cfg.RequestTimeout)*time.Second,
		logger,
	)

	// Create orchestration service and handlers
	chatService := chatSvc.NewService(chatRepo, modelService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	aiHandler := handler.NewAIHandler(chatService, logger)

	logger.Info("services initialized")

	mux := handler.NewRouter(chatHandler, aiHandler)

	// Build middleware chain (applied in reverse order - they wrap
	// each other). Order: CORS → Logging → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // model calls dominate request latency
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
