package services

import "errors"

// Sentinel errors surfaced by the service layer. Controllers translate
// these into HTTP status codes; nothing here is retried.
var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("duplicate record")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports malformed or insufficient input
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given code and message
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}
