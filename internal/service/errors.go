package service

import (
	"errors"
	"fmt"
)

// Domain errors. Messages are safe to show to clients.
var (
	ErrUserExists         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingToken       = errors.New("No token, authorization denied")
	ErrInvalidToken       = errors.New("Token is not valid")
	ErrTaskNotFound       = errors.New("Task not found")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
