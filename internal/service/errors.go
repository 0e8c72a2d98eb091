package service

import "errors"

// Business errors surfaced to the transport layer. Handlers map them
// onto HTTP status codes.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials") // 401

	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("email already registered") // 409

	// ErrNotFound is returned when a session record is absent or owned
	// by a different user. The two cases are deliberately
	// indistinguishable.
	ErrNotFound = errors.New("session not found") // 404
)

// ValidationError reports a missing or malformed input field. Its
// message names the offending field and is safe to return to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(message string) error {
	return &ValidationError{Message: message}
}
