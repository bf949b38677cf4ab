package cli

import (
	"fmt"

	"github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/logging"
)

// ErrorHandler turns command errors into messages for the terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides a user-friendly message prefixed with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if _, ok := errors.AsAppError(err); ok {
		eh.log(err)
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if _, ok := errors.AsAppError(err); ok {
		eh.log(err)
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// log keeps the underlying cause and context in the debug log, since
// the user message drops them
func (eh *ErrorHandler) log(err error) {
	if !errors.ShouldLogError(err) {
		return
	}
	if appErr, ok := errors.AsAppError(err); ok && len(appErr.Context) > 0 {
		logging.Debugf("cli: %s: %v [%s]", appErr.Code, err, appErr.ContextString())
		return
	}
	logging.Debugf("cli: %s: %v", errors.GetErrorCode(err), err)
}
