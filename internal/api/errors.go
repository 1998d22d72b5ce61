package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Client-facing error messages.
const (
	MsgInvalidEffort   = "Invalid estimated effort!"
	MsgInvalidDeadline = "Invalid deadline!"
	MsgTaskNotFound    = "Task not found!"
	MsgInvalidRequest  = "Invalid request format"
	MsgValidation      = "Validation error"
	MsgUnexpected      = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad input values
	case errors.Is(err, domain.ErrInvalidEffort),
		errors.Is(err, domain.ErrInvalidDeadline),
		errors.Is(err, domain.ErrEmptyTaskName),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrUpdateFailed):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Client went away
	case errors.Is(err, context.Canceled):
		return 499

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	switch {
	case errors.Is(err, domain.ErrInvalidEffort):
		return MsgInvalidEffort

	case errors.Is(err, domain.ErrInvalidDeadline):
		return MsgInvalidDeadline

	case errors.Is(err, domain.ErrEmptyTaskName):
		return "Invalid name: required field"

	case store.IsNotFoundError(err):
		return MsgTaskNotFound

	case errors.Is(err, store.ErrUpdateFailed):
		return "Task update rejected"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return MsgValidation

	default:
		return MsgUnexpected
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		field := jsonFieldName(fe.Field())
		if fe.Tag() != "" {
			return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
		}
		return fmt.Sprintf("Invalid %s", field)
	}

	// Fall back to a generic validation error message
	return MsgValidation
}

// jsonFieldName converts a Go field name such as EstimatedEffort to the
// snake_case key clients send.
func jsonFieldName(goName string) string {
	var b strings.Builder
	for i, r := range goName {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for a service error, choosing the
// status code and message from the error chain. A non-empty fallbackMessage
// replaces the generic message on 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && fallbackMessage != "" {
		message = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
