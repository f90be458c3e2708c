package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for single-entity lookups that match nothing.
	// An empty filtered list is not an error.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a create would collide with an existing key.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError describes a caller error detected before touching the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
