package apperr

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures so handlers can pick a status code.
type ErrorType string

const (
	// ErrorTypeValidation is a malformed or incomplete request.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeStorage is a failed read or write against the backing store.
	ErrorTypeStorage ErrorType = "STORAGE"
)

// AppError carries a client-facing message plus the underlying cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error. The message is shown to the caller as is.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewStorageError wraps a storage failure.
func NewStorageError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: message,
		Err:     err,
	}
}

// IsValidation reports whether err is, or wraps, a validation error.
func IsValidation(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsStorage reports whether err is, or wraps, a storage error.
func IsStorage(err error) bool {
	return hasType(err, ErrorTypeStorage)
}

// Message returns the client-facing message of an AppError, or "" for other errors.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}

func hasType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}
