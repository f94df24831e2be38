package api

import (
	"time"

	"github.com/phrazzld/userdir-api/internal/domain"
)

// CreateUserRequest defines the payload for creating a user.
type CreateUserRequest struct {
	Name         string `json:"name"          validate:"required,max=150"`
	Email        string `json:"email"         validate:"required,email,max=255"`
	PasswordHash string `json:"password_hash" validate:"required,max=255"`
	IsActive     *bool  `json:"is_active"`
}

// ToParams converts the request into domain.NewUserParams.
func (r CreateUserRequest) ToParams() domain.NewUserParams {
	return domain.NewUserParams{
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsActive:     r.IsActive,
	}
}

// UpdateUserRequest defines the payload for a partial update.
// Absent fields are left untouched.
type UpdateUserRequest struct {
	Name         *string `json:"name"          validate:"omitempty,max=150"`
	Email        *string `json:"email"         validate:"omitempty,email,max=255"`
	PasswordHash *string `json:"password_hash" validate:"omitempty,max=255"`
	IsActive     *bool   `json:"is_active"`
}

// ToPatch converts the request into a domain.UserPatch.
func (r UpdateUserRequest) ToPatch() domain.UserPatch {
	return domain.UserPatch{
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsActive:     r.IsActive,
	}
}

// UserResponse is the public representation of a user.
// The password hash is never included.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// userToResponse converts a domain.User to a UserResponse.
func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	return out
}
