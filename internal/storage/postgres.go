package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"banter/internal/domain"
)

// PostgresStore is a Postgres-backed Store: a single table mapping
// keys to JSONB values. Row-level UPSERT gives per-key atomicity.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresStore creates a connection pool and ensures the kv table
// exists. The table name is prefixed per environment (dev_, test_,
// prod_) like the rest of the deployment's tables.
func NewPostgresStore(ctx context.Context, databaseURL, tablePrefix string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{
		pool:  pool,
		table: tablePrefix + "kv",
	}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// ensureSchema creates the kv table if it does not exist.
// Safe to interpolate: the table name is built from a config-owned
// prefix, never from request input.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key   TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)
	`, s.table)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure kv table: %w", err)
	}
	return nil
}

// Get retrieves the value for a key
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table)

	var value []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, &domain.StorageError{Message: fmt.Sprintf("kv get %s: %v", key, err)}
	}

	return value, nil
}

// Set writes the value for a key, creating or replacing it
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, s.table)

	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return &domain.StorageError{Message: fmt.Sprintf("kv set %s: %v", key, err)}
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
