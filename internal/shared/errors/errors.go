// Package errors provides application-level error types shared across layers.
// The taxonomy follows the ticket lifecycle contract: validation errors are
// never retried, persistence errors are retryable, load errors are non-fatal
// warnings that leave prior state intact.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypePersistence  ErrorType = "persistence_error"
	ErrorTypeLoad         ErrorType = "load_error"
	ErrorTypeInternal     ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
	// Retryable marks failures the caller may retry (durable-store writes).
	Retryable bool `json:"retryable,omitempty"`

	cause error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewValidationError creates an error for caller-supplied input that violates
// a precondition. Surfaced immediately, never retried.
func NewValidationError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: first(details),
	}
}

// NewNotFoundError creates an error for an absent ticket or activity.
func NewNotFoundError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
		Details: first(details),
	}
}

// NewConflictError creates an error for a state conflict.
func NewConflictError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
		Code:    http.StatusConflict,
		Details: first(details),
	}
}

// NewUnauthorizedError creates an error for missing or invalid authentication.
func NewUnauthorizedError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
		Code:    http.StatusUnauthorized,
		Details: first(details),
	}
}

// NewForbiddenError creates an error for an authenticated caller lacking
// permission on the target resource.
func NewForbiddenError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: message,
		Code:    http.StatusForbidden,
		Details: first(details),
	}
}

// NewPersistenceError wraps a failed durable-store write. The optimistic
// local mutation must have been rolled back by the time this is returned.
func NewPersistenceError(message string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypePersistence,
		Message:   message,
		Code:      http.StatusServiceUnavailable,
		Retryable: true,
		cause:     cause,
	}
}

// NewLoadError wraps a failed initial or refresh load. Callers keep the
// last-known-good state and surface this as a non-fatal warning.
func NewLoadError(message string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeLoad,
		Message:   message,
		Code:      http.StatusServiceUnavailable,
		Retryable: true,
		cause:     cause,
	}
}

// NewInternalError creates an error for unexpected internal failures.
func NewInternalError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: first(details),
	}
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Type == t
	}
	return false
}

func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsRetryable reports whether the failure may be retried by the caller.
func IsRetryable(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Retryable
	}
	return false
}

func first(details []string) string {
	if len(details) > 0 {
		return details[0]
	}
	return ""
}
