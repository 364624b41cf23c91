package repositories

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateEntry is returned when trying to create a duplicate entity
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidID is returned when an invalid ID is provided
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidCursor is returned when a pagination cursor does not match
	// the store's key shape
	ErrInvalidCursor = errors.New("invalid pagination cursor")

	// ErrConnection is returned when the store cannot be reached
	ErrConnection = errors.New("store connection error")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type
	ID      string // Entity ID (if applicable)
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != "" {
		return fmt.Sprintf("%s %s operation failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target error
func (e *RepositoryError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		ID:     id,
		Err:    err,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID %s not found", entity, id),
	}
}

// DuplicateError creates a "duplicate entry" repository error
func DuplicateError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Op:      "create",
		Entity:  entity,
		ID:      id,
		Err:     ErrDuplicateEntry,
		Message: fmt.Sprintf("%s with ID %s already exists", entity, id),
	}
}

// CursorError creates an "invalid cursor" repository error
func CursorError(entity string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      "paginate",
		Entity:  entity,
		Err:     ErrInvalidCursor,
		Message: fmt.Sprintf("invalid pagination cursor for %s: %v", entity, err),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return errors.Is(repoErr.Err, ErrNotFound)
	}
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate checks if an error is a "duplicate entry" error
func IsDuplicate(err error) bool {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return errors.Is(repoErr.Err, ErrDuplicateEntry)
	}
	return errors.Is(err, ErrDuplicateEntry)
}

// IsInvalidCursor checks if an error is an "invalid cursor" error
func IsInvalidCursor(err error) bool {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return errors.Is(repoErr.Err, ErrInvalidCursor)
	}
	return errors.Is(err, ErrInvalidCursor)
}
