package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a referenced chat or message does not exist
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input; detected before any
	// storage or model call
	ValidationError struct {
		Message string
	}

	// ProviderError indicates the model capability failed, timed out,
	// or returned an empty completion
	ProviderError struct {
		Message string
	}

	// StorageError indicates a persistence I/O failure; never retried
	// inside the core
	StorageError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *ProviderError) Error() string   { return e.Message }
func (e *StorageError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *ProviderError) StatusCode() int   { return http.StatusBadGateway }
func (e *StorageError) StatusCode() int    { return http.StatusServiceUnavailable }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrProvider   = errors.New("model provider failed")
	ErrStorage    = errors.New("storage unavailable")
)

// Is allows errors.Is() to match typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ProviderError) Is(target error) bool   { return target == ErrProvider }
func (e *StorageError) Is(target error) bool    { return target == ErrStorage }
