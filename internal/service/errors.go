package service

import (
	"errors"
	"fmt"
)

// Failure kinds returned by UserDirectory. Callers match them with errors.Is.
//
// Error handling principles:
// 1. Every failed UserDirectory operation returns a *Error carrying one kind
// 2. The kind decides the outcome category, Message is safe to show clients
// 3. The underlying cause stays reachable through errors.Is/As for logging
// 4. The API layer maps kinds to HTTP status codes
var (
	// ErrInvalidInput indicates a malformed identifier or caller-supplied shape error.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates the store rejected a write because
	// required data was missing or invalid.
	// API layer should map this to HTTP 400 Bad Request.
	ErrValidationFailed = errors.New("validation failed")

	// ErrConflict indicates a live user already holds the email, detected
	// either by the pre-check or by the store's uniqueness constraint.
	// API layer should map this to HTTP 409 Conflict.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates no live user exists for the given ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrNotFound = errors.New("not found")

	// ErrInternal indicates an unclassified persistence or storage fault.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrInternal = errors.New("internal error")
)

// Client-facing messages.
const (
	MsgInvalidID        = "invalid user id"
	MsgValidationFailed = "required data missing or invalid"
	MsgEmailExists      = "a user already exists with this email"
	MsgUserNotFound     = "user not found"
)

// Error is the typed failure returned by UserDirectory operations.
type Error struct {
	Kind    error  // One of the Err* kinds above
	Message string // Safe, human-readable message
	Err     error  // Underlying cause, never shown to clients
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func invalidInput(cause error) error {
	return &Error{Kind: ErrInvalidInput, Message: MsgInvalidID, Err: cause}
}

func validationFailed(cause error) error {
	return &Error{Kind: ErrValidationFailed, Message: MsgValidationFailed, Err: cause}
}

func conflict(cause error) error {
	return &Error{Kind: ErrConflict, Message: MsgEmailExists, Err: cause}
}

func notFound(cause error) error {
	return &Error{Kind: ErrNotFound, Message: MsgUserNotFound, Err: cause}
}

// internal builds the failure for op ("create", "update", "remove", "list", "find").
func internal(op string, cause error) error {
	noun := "user"
	if op == "list" {
		noun = "users"
	}
	return &Error{
		Kind:    ErrInternal,
		Message: fmt.Sprintf("failed to %s %s, try again later", op, noun),
		Err:     cause,
	}
}
