package errors

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidDeadline = "INVALID_DEADLINE"
	CodeLoadFailed      = "LOAD_FAILED"
	CodeSaveFailed      = "SAVE_FAILED"
	CodeEmptyName       = "EMPTY_NAME"
	CodeInvalidConfig   = "INVALID_CONFIG"
)

// NewParseError reports deadline text that is not a dd/MM/yyyy calendar date
func NewParseError(input string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: fmt.Sprintf("invalid deadline %q, expected dd/MM/yyyy", input),
		Code:    CodeInvalidDeadline,
		Cause:   cause,
		Context: map[string]interface{}{
			"input": input,
		},
	}
}

// NewLoadError reports a task file that is missing, unreadable or malformed
func NewLoadError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypePersistence,
		Message: fmt.Sprintf("failed to load tasks from %s", path),
		Code:    CodeLoadFailed,
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewSaveError reports a task file that could not be written
func NewSaveError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypePersistence,
		Message: fmt.Sprintf("failed to save tasks to %s", path),
		Code:    CodeSaveFailed,
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewValidationError creates a new validation error
func NewValidationError(code, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    code,
		Context: make(map[string]interface{}),
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetUserMessage returns the message shown to the user in the status line
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Code {
		case CodeInvalidDeadline:
			return "Invalid date format. Use dd/MM/yyyy."
		case CodeEmptyName:
			return "Task name cannot be empty."
		case CodeSaveFailed:
			return "Error saving tasks."
		case CodeLoadFailed:
			return "Error loading tasks."
		}
		return appErr.Message
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether the error reflects a system fault rather than user input
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeParse, ErrorTypeValidation:
			return false
		default:
			return true
		}
	}
	return true
}
