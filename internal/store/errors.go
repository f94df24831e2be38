package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a write would violate a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when a write is rejected because required
	// data is missing or invalid.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUserNotFound indicates that no live user matched the lookup.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEmailExists indicates that a live user already holds the email.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// WriteFailureReason classifies a rejected write.
type WriteFailureReason string

// Known write failure reasons.
const (
	ReasonRequiredFieldMissing WriteFailureReason = "required-field-missing"
	ReasonUniqueViolation      WriteFailureReason = "unique-violation"
	ReasonOther                WriteFailureReason = "other"
)

// WriteError is the structured failure signal returned by Insert and Save.
type WriteError struct {
	Op     string             // The operation that failed ("insert", "save")
	Reason WriteFailureReason // Classified cause
	Field  string             // Column or constraint involved, when known
	Err    error              // Original driver error
}

// NewWriteError creates a WriteError.
func NewWriteError(op string, reason WriteFailureReason, field string, err error) *WriteError {
	return &WriteError{
		Op:     op,
		Reason: reason,
		Field:  field,
		Err:    err,
	}
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	msg := fmt.Sprintf("user %s failed: %s", e.Op, e.Reason)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the original driver error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is lets callers match the classified reason with the store sentinels,
// e.g. errors.Is(err, store.ErrEmailExists).
func (e *WriteError) Is(target error) bool {
	switch e.Reason {
	case ReasonUniqueViolation:
		return target == ErrDuplicate || target == ErrEmailExists
	case ReasonRequiredFieldMissing:
		return target == ErrInvalidEntity
	}
	return false
}

// ReasonOf classifies err. Errors that are not a *WriteError are ReasonOther.
func ReasonOf(err error) WriteFailureReason {
	var wErr *WriteError
	if errors.As(err, &wErr) && wErr.Reason != "" {
		return wErr.Reason
	}
	return ReasonOther
}

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
