package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert would violate a unique constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrUpdateFailed is returned when a write affected no rows or the database rejected it.
	ErrUpdateFailed = errors.New("update failed")

	// ErrVocabNotFound indicates that the requested vocab does not exist.
	ErrVocabNotFound = fmt.Errorf("%w: vocab", ErrNotFound)

	// ErrVocabStudyNotFound indicates that the requested study record does not exist.
	ErrVocabStudyNotFound = fmt.Errorf("%w: vocab study", ErrNotFound)

	// ErrUserNotFound indicates that the requested user progress record does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError carries the entity, operation and id of a failed store call.
type StoreError struct {
	Entity    string // The entity type (e.g., "vocab", "user")
	Operation string // The operation that failed (e.g., "get", "update")
	ID        int64
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s operation on %s %d failed: %v", e.Operation, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation string, id int64, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		ID:        id,
		Err:       err,
	}
}
