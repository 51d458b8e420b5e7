package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeEmptyTopic   = "EMPTY_TOPIC"
	ErrCodeInvalidState = "INVALID_STATE"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code and error code.
// Every taxonomy error is recoverable at the UI boundary; none is fatal.
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_STATE")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewEmptyTopicError creates a new EMPTY_TOPIC error for a practice start
// that matched no cards.
func NewEmptyTopicError(topic string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyTopic,
		Message: fmt.Sprintf("no cards found for topic %q", topic),
		Status:  409,
	}
}

// NewInvalidStateError creates a new INVALID_STATE error for a state-machine
// misuse such as submitting twice without advancing.
func NewInvalidStateError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidState,
		Message: reason,
		Status:  409,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// code returns the error code of err if it is (or wraps) an AppError.
func code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND error.
func IsNotFound(err error) bool { return code(err) == ErrCodeNotFound }

// IsValidation reports whether err is a VALIDATION_ERROR.
func IsValidation(err error) bool { return code(err) == ErrCodeValidation }

// IsEmptyTopic reports whether err is an EMPTY_TOPIC error.
func IsEmptyTopic(err error) bool { return code(err) == ErrCodeEmptyTopic }

// IsInvalidState reports whether err is an INVALID_STATE error.
func IsInvalidState(err error) bool { return code(err) == ErrCodeInvalidState }
