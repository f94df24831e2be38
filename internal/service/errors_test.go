package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	kinds := []error{ErrInvalidInput, ErrValidationFailed, ErrConflict, ErrNotFound, ErrInternal}
	for i, a := range kinds {
		for j, b := range kinds {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with underlying error",
			err:      &Error{Kind: ErrNotFound, Message: MsgUserNotFound, Err: errors.New("no rows")},
			expected: "user not found: no rows",
		},
		{
			name:     "without underlying error",
			err:      &Error{Kind: ErrConflict, Message: MsgEmailExists},
			expected: "a user already exists with this email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := internal("create", cause)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConflict)

	var svcErr *Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ErrInternal, svcErr.Kind)

	bare := &Error{Kind: ErrNotFound, Message: MsgUserNotFound}
	assert.ErrorIs(t, bare, ErrNotFound)
}

func TestInternalMessages(t *testing.T) {
	tests := []struct {
		op       string
		expected string
	}{
		{"create", "failed to create user, try again later"},
		{"update", "failed to update user, try again later"},
		{"remove", "failed to remove user, try again later"},
		{"find", "failed to find user, try again later"},
		{"list", "failed to list users, try again later"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			var svcErr *Error
			if assert.ErrorAs(t, internal(tt.op, nil), &svcErr) {
				assert.Equal(t, tt.expected, svcErr.Message)
			}
		})
	}
}

func TestConstructorsCarryKinds(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{"invalid input", invalidInput(cause), ErrInvalidInput, MsgInvalidID},
		{"validation failed", validationFailed(cause), ErrValidationFailed, MsgValidationFailed},
		{"conflict", conflict(cause), ErrConflict, MsgEmailExists},
		{"not found", notFound(cause), ErrNotFound, MsgUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svcErr *Error
			if assert.ErrorAs(t, tt.err, &svcErr) {
				assert.Equal(t, tt.kind, svcErr.Kind)
				assert.Equal(t, tt.message, svcErr.Message)
			}
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}
