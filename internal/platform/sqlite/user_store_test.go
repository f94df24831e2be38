package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/userdir-api/internal/config"
	"github.com/phrazzld/userdir-api/internal/domain"
	"github.com/phrazzld/userdir-api/internal/platform/migrate"
	"github.com/phrazzld/userdir-api/internal/platform/sqlite"
	"github.com/phrazzld/userdir-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.UserStore {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator, err := migrate.New(db, config.DriverSQLite, nil)
	require.NoError(t, err)
	require.NoError(t, migrator.Up(ctx))

	return sqlite.NewUserStore(db, nil)
}

func newUser(name, email string, now time.Time) *domain.User {
	return domain.NewUser(domain.NewUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: "hash-" + name,
	}, now)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestUserStore_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 123_000_000, time.UTC)

	created, err := s.Insert(ctx, newUser("Ana", "ana@mail.com", now))
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(1), created.ID)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, "hash-Ana", created.PasswordHash)
	assert.True(t, created.IsActive)
	assert.True(t, created.CreatedAt.Equal(now))
	assert.Nil(t, created.DeletedAt)

	byID, err := s.FindLiveByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byEmail, err := s.FindLiveByEmail(ctx, "ana@mail.com")
	require.NoError(t, err)
	assert.Equal(t, created, byEmail)

	_, err = s.FindLiveByEmail(ctx, "nobody@mail.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.FindLiveByID(ctx, 99)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_Insert_InactiveUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := newUser("Ana", "ana@mail.com", time.Now())
	u.IsActive = false
	created, err := s.Insert(ctx, u)
	require.NoError(t, err)
	assert.False(t, created.IsActive)
}

func TestUserStore_Insert_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *domain.User)
		reason store.WriteFailureReason
		field  string
	}{
		{"missing name", func(u *domain.User) { u.Name = "" }, store.ReasonRequiredFieldMissing, "name"},
		{"missing email", func(u *domain.User) { u.Email = "" }, store.ReasonRequiredFieldMissing, "email"},
		{"missing password hash", func(u *domain.User) { u.PasswordHash = "" }, store.ReasonRequiredFieldMissing, "password_hash"},
		{"duplicate live email", func(u *domain.User) { u.Email = "taken@mail.com" }, store.ReasonUniqueViolation, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestStore(t)
			_, err := s.Insert(ctx, newUser("Taken", "taken@mail.com", time.Now()))
			require.NoError(t, err)

			u := newUser("Ana", "ana@mail.com", time.Now())
			tt.mutate(u)

			_, err = s.Insert(ctx, u)
			require.Error(t, err)
			assert.Equal(t, tt.reason, store.ReasonOf(err))

			var wErr *store.WriteError
			require.ErrorAs(t, err, &wErr)
			assert.Equal(t, "insert", wErr.Op)
			assert.Equal(t, tt.field, wErr.Field)
		})
	}
}

func TestUserStore_SaveAndRetire(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	created, err := s.Insert(ctx, newUser("Ana", "ana@mail.com", now))
	require.NoError(t, err)

	next := created.Clone()
	next.Name = "Ana Maria"
	next.IsActive = false
	next.UpdatedAt = now.Add(time.Minute)
	saved, err := s.Save(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, next, saved)

	retired := saved.Clone()
	retired.Retire(now.Add(2 * time.Minute))
	gone, err := s.Save(ctx, retired)
	require.NoError(t, err)
	require.NotNil(t, gone.DeletedAt)
	assert.True(t, gone.DeletedAt.Equal(now.Add(2*time.Minute)))

	_, err = s.FindLiveByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = s.FindLiveByEmail(ctx, "ana@mail.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	live, err := s.ListLive(ctx)
	require.NoError(t, err)
	assert.Empty(t, live)

	// The retired user's email is free; the new user gets a fresh ID.
	again, err := s.Insert(ctx, newUser("Ana", "ana@mail.com", now))
	require.NoError(t, err)
	assert.Greater(t, again.ID, created.ID)
}

func TestUserStore_Save_Violations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ana, err := s.Insert(ctx, newUser("Ana", "ana@mail.com", time.Now()))
	require.NoError(t, err)
	beto, err := s.Insert(ctx, newUser("Beto", "beto@mail.com", time.Now()))
	require.NoError(t, err)

	t.Run("email held by another live user", func(t *testing.T) {
		clash := beto.Clone()
		clash.Email = ana.Email
		_, err := s.Save(ctx, clash)
		assert.Equal(t, store.ReasonUniqueViolation, store.ReasonOf(err))
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("emptied required field", func(t *testing.T) {
		emptied := beto.Clone()
		emptied.Name = ""
		_, err := s.Save(ctx, emptied)
		assert.Equal(t, store.ReasonRequiredFieldMissing, store.ReasonOf(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		ghost := beto.Clone()
		ghost.ID = 404
		_, err := s.Save(ctx, ghost)
		require.Error(t, err)
		assert.Equal(t, store.ReasonOther, store.ReasonOf(err))
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	unchanged, err := s.FindLiveByID(ctx, beto.ID)
	require.NoError(t, err)
	assert.Equal(t, beto, unchanged)
}

func TestUserStore_ListLive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.ListLive(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var ids []domain.UserID
	for _, email := range []string{"a@mail.com", "b@mail.com", "c@mail.com"} {
		u, err := s.Insert(ctx, newUser("U", email, time.Now()))
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	middle, err := s.FindLiveByID(ctx, ids[1])
	require.NoError(t, err)
	middle.Retire(time.Now())
	_, err = s.Save(ctx, middle)
	require.NoError(t, err)

	live, err := s.ListLive(ctx)
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, ids[0], live[0].ID)
	assert.Equal(t, ids[2], live[1].ID)
}
