package domain

import (
	"strconv"
	"strings"
	"time"
)

// Field limits for User, mirrored by the users table column sizes.
const (
	MaxNameLength         = 150
	MaxEmailLength        = 255
	MaxPasswordHashLength = 255
)

// UserID identifies a User. IDs are assigned by the store on insert,
// are never reassigned and never reused.
type UserID int64

// ParseUserID parses the external form of a user ID.
// A well-formed ID is a base-10 integer greater than zero.
func ParseUserID(s string) (UserID, error) {
	if strings.TrimSpace(s) == "" {
		return 0, NewValidationError("id", "is required", ErrInvalidID)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, NewValidationError("id", "must be a positive integer", ErrInvalidID)
	}

	return UserID(n), nil
}

// String returns the base-10 form of the ID.
func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// User is a user account.
//
// A user is live while DeletedAt is nil and retired once it is set.
// Retirement is one-way.
type User struct {
	ID           UserID     `json:"id,string"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose credential material in JSON
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at"`
}

// IsLive reports whether the user has not been retired.
func (u *User) IsLive() bool {
	return u.DeletedAt == nil
}

// Retire marks the user as retired at the given time.
func (u *User) Retire(at time.Time) {
	t := at.UTC()
	u.DeletedAt = &t
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	if u.DeletedAt != nil {
		t := *u.DeletedAt
		c.DeletedAt = &t
	}
	return &c
}

// NewUserParams holds the caller-supplied fields for a new user.
// IsActive defaults to true when nil.
type NewUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	IsActive     *bool
}

// NewUser builds a live, not yet persisted User from params.
// The ID is left zero for the store to assign.
//
// No field validation happens here: shape checks belong to the inbound
// boundary and required-field enforcement to the store.
func NewUser(params NewUserParams, now time.Time) *User {
	isActive := true
	if params.IsActive != nil {
		isActive = *params.IsActive
	}

	now = now.UTC()
	return &User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	IsActive     *bool
}

// ChangesEmail reports whether the patch sets an email different from current.
func (p UserPatch) ChangesEmail(current string) bool {
	return p.Email != nil && *p.Email != current
}

// Apply copies the present fields onto u.
// ID, CreatedAt and DeletedAt are never touched.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
