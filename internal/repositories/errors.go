package repositories

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable is returned when the store is unreachable or throttling;
	// callers may retry
	ErrUnavailable = errors.New("store unavailable")

	// ErrTimeout is returned when a store call exceeds its per-call budget
	ErrTimeout = errors.New("store operation timeout")

	// ErrInvalidRecord is returned when a stored record cannot be decoded
	ErrInvalidRecord = errors.New("invalid record")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op     string // Operation that failed
	Entity string // Entity type
	Key    string // Record key (if applicable)
	Err    error  // Underlying error
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s operation failed for key %s: %v", e.Entity, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity, key string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		Key:    key,
		Err:    err,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(entity, key string) *RepositoryError {
	return &RepositoryError{
		Op:     "get",
		Entity: entity,
		Key:    key,
		Err:    ErrNotFound,
	}
}

// UnavailableError creates a retryable "store unavailable" repository error
func UnavailableError(op, entity, key string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		Key:    key,
		Err:    fmt.Errorf("%w: %v", ErrUnavailable, err),
	}
}
