package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDeadline is returned when a deadline cannot be parsed as a
	// calendar date.
	ErrInvalidDeadline = errors.New("invalid deadline")

	// ErrInvalidEffort is returned when an effort estimate is not a
	// non-negative integer.
	ErrInvalidEffort = errors.New("invalid estimated effort")

	// ErrEmptyTaskName is returned when a task is created without a name.
	ErrEmptyTaskName = errors.New("task name cannot be empty")
)

// ValidationError describes a failed validation of a single field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
