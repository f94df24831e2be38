package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    UserID
		wantErr bool
	}{
		{name: "valid", input: "1", want: 1},
		{name: "large", input: "9007199254740993", want: 9007199254740993},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "not_a_number", input: "not-a-number", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "decimal", input: "1.5", wantErr: true},
		{name: "surrounding_space", input: " 7", wantErr: true},
		{name: "overflow", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUserID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidID))
				var vErr *ValidationError
				assert.True(t, errors.As(err, &vErr))
				assert.Equal(t, "id", vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestNewUser(t *testing.T) {
	now := time.Date(2026, time.March, 3, 9, 30, 0, 0, time.FixedZone("BRT", -3*60*60))

	t.Run("defaults_to_active", func(t *testing.T) {
		u := NewUser(NewUserParams{Name: "Ana", Email: "ana@mail.com", PasswordHash: "123"}, now)

		assert.Zero(t, u.ID)
		assert.Equal(t, "Ana", u.Name)
		assert.Equal(t, "ana@mail.com", u.Email)
		assert.Equal(t, "123", u.PasswordHash)
		assert.True(t, u.IsActive)
		assert.True(t, u.IsLive())
		assert.Equal(t, now.UTC(), u.CreatedAt)
		assert.Equal(t, u.CreatedAt, u.UpdatedAt)
		assert.Equal(t, time.UTC, u.CreatedAt.Location())
	})

	t.Run("explicit_inactive", func(t *testing.T) {
		inactive := false
		u := NewUser(NewUserParams{Name: "Ana", Email: "ana@mail.com", PasswordHash: "123", IsActive: &inactive}, now)
		assert.False(t, u.IsActive)
	})
}

func TestUserPatch(t *testing.T) {
	created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	base := func() *User {
		return &User{
			ID:           7,
			Name:         "Beto",
			Email:        "beto@mail.com",
			PasswordHash: "456",
			IsActive:     true,
			CreatedAt:    created,
			UpdatedAt:    created,
		}
	}

	t.Run("empty_patch_is_noop", func(t *testing.T) {
		u := base()
		UserPatch{}.Apply(u)
		assert.Equal(t, base(), u)
	})

	t.Run("applies_present_fields_only", func(t *testing.T) {
		name := "Roberto"
		inactive := false
		u := base()
		UserPatch{Name: &name, IsActive: &inactive}.Apply(u)

		assert.Equal(t, "Roberto", u.Name)
		assert.False(t, u.IsActive)
		assert.Equal(t, "beto@mail.com", u.Email)
		assert.Equal(t, "456", u.PasswordHash)
		assert.Equal(t, UserID(7), u.ID)
		assert.Equal(t, created, u.CreatedAt)
	})

	t.Run("changes_email", func(t *testing.T) {
		same := "beto@mail.com"
		other := "ana@mail.com"
		assert.False(t, UserPatch{}.ChangesEmail("beto@mail.com"))
		assert.False(t, UserPatch{Email: &same}.ChangesEmail("beto@mail.com"))
		assert.True(t, UserPatch{Email: &other}.ChangesEmail("beto@mail.com"))
	})
}

func TestUser_RetireAndClone(t *testing.T) {
	u := &User{ID: 1, Name: "Ana"}
	at := time.Date(2026, time.May, 5, 12, 0, 0, 0, time.UTC)

	c := u.Clone()
	u.Retire(at)

	assert.False(t, u.IsLive())
	require.NotNil(t, u.DeletedAt)
	assert.Equal(t, at, *u.DeletedAt)
	assert.True(t, c.IsLive(), "clone must not share the retirement marker")

	c2 := u.Clone()
	*c2.DeletedAt = at.Add(time.Hour)
	assert.Equal(t, at, *u.DeletedAt)
}

func TestUser_JSONNeverExposesPasswordHash(t *testing.T) {
	u := &User{ID: 42, Name: "Ana", Email: "ana@mail.com", PasswordHash: "secret-hash", IsActive: true}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret-hash")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"id":"42"`)
	assert.Contains(t, string(data), `"deleted_at":null`)
}
