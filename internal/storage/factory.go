package storage

import (
	"context"
	"fmt"

	"banter/internal/config"
)

// Open creates the Store selected by the configuration.
//
// Supported drivers:
//   - "memory" - in-process map, for development and tests
//   - "redis" - Redis string keys
//   - "postgres" - single kv table via pgx
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "memory":
		return NewMemoryStore(), nil

	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable not set")
		}
		return NewPostgresStore(ctx, cfg.DatabaseURL, cfg.TablePrefix)

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}
