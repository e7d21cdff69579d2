package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core services matches exactly one of these
// with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("resource not found")
	ErrPersistence = errors.New("persistence error")
)

// Auth errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Error carries a kind, a human readable message and the underlying cause, if any.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed or missing input
func NewValidationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// NewConflictError reports a state conflict (overlapping stay, occupied room, duplicates)
func NewConflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// NewNotFoundError reports a missing target
func NewNotFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// NewPersistenceError wraps a failed store operation
func NewPersistenceError(message string, err error) error {
	return &Error{Kind: ErrPersistence, Message: message, Err: err}
}

// AsError extracts a *Error from err
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Message returns the user facing message of err.
func Message(err error) string {
	if e, ok := AsError(err); ok {
		return e.Message
	}
	return err.Error()
}
