package store

import (
	"context"

	"github.com/phrazzld/userdir-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// Only live users (DeletedAt == nil) are visible through the Find and List
// methods. Implementations must enforce email uniqueness among live users
// at write time; that constraint is the final authority when two writers
// race past a read-side check.
type UserStore interface {
	// FindLiveByEmail retrieves the live user with the given email.
	// Email matching is exact and case-sensitive.
	// Returns ErrUserNotFound if no live user holds the email.
	FindLiveByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindLiveByID retrieves the live user with the given ID.
	// Returns ErrUserNotFound if the user does not exist or is retired.
	FindLiveByID(ctx context.Context, id domain.UserID) (*domain.User, error)

	// ListLive returns every live user. Ordering is unspecified.
	ListLive(ctx context.Context) ([]*domain.User, error)

	// Insert persists a new user and returns the stored record,
	// including the store-assigned ID.
	// Write failures are reported as *WriteError.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)

	// Save writes every mutable column of an existing user, selected by ID.
	// It is used for field updates and for retirement alike.
	// Write failures are reported as *WriteError.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
