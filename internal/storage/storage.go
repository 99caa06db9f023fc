// Package storage provides the opaque key-value persistence boundary
// underlying the chat repository. Get and Set are atomic per key; no
// cross-key transactions are offered. I/O failures surface as
// domain.ErrStorage and are never retried here.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates the key is absent. Absence is a normal
// outcome, not a storage failure.
var ErrKeyNotFound = errors.New("key not found")

// Store is the storage adapter contract
type Store interface {
	// Get retrieves the value for a key
	// Returns ErrKeyNotFound if the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the value for a key, creating or replacing it
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any underlying resources
	Close() error
}
