// Package errors defines structured, code-carrying errors shared by the
// review services and the HTTP layer.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type for review operations.
type ErrorCode string

const (
	// ErrCodeNotFound indicates no item, question or due candidate exists.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates malformed input, e.g. a non-numeric math answer.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeUnknownTemplate indicates a stored record references a template id
	// that is no longer in the registry. Registry/storage drift, not a user error.
	ErrCodeUnknownTemplate ErrorCode = "UNKNOWN_TEMPLATE"
	// ErrCodeLLMUnavailable indicates the feedback generator could not be reached.
	ErrCodeLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	// ErrCodeInternal indicates an unexpected server-side failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// ReviewError represents a structured error for review operations.
type ReviewError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ReviewError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ReviewError) Unwrap() error {
	return e.Cause
}

// New creates a ReviewError with the given code and message.
func New(code ErrorCode, format string, args ...any) *ReviewError {
	return &ReviewError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a ReviewError wrapping a cause.
func Wrap(cause error, code ErrorCode, format string, args ...any) *ReviewError {
	return &ReviewError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf extracts the error code, defaulting to INTERNAL for plain errors.
func CodeOf(err error) ErrorCode {
	var re *ReviewError
	if errors.As(err, &re) {
		return re.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
