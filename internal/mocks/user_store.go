package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/phrazzld/userdir-api/internal/domain"
	"github.com/phrazzld/userdir-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
//
// Without overrides it behaves like the SQL stores: IDs come from a
// monotonically increasing sequence, empty required strings are rejected as
// required-field-missing and a live email may be held by one user only
// (unique-violation). Records are copied in and out, so callers never share
// memory with the store.
type MockUserStore struct {
	// Function fields for customizable behavior
	FindLiveByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	FindLiveByIDFn    func(ctx context.Context, id domain.UserID) (*domain.User, error)
	ListLiveFn        func(ctx context.Context) ([]*domain.User, error)
	InsertFn          func(ctx context.Context, user *domain.User) (*domain.User, error)
	SaveFn            func(ctx context.Context, user *domain.User) (*domain.User, error)

	// Call counters
	InsertCalls int
	SaveCalls   int

	mu     sync.Mutex
	users  map[domain.UserID]*domain.User
	lastID domain.UserID
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[domain.UserID]*domain.User),
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Seed stores a copy of user as-is, bypassing constraints.
// A zero ID is assigned from the sequence.
func (m *MockUserStore) Seed(user *domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := user.Clone()
	if c.ID == 0 {
		m.lastID++
		c.ID = m.lastID
	} else if c.ID > m.lastID {
		m.lastID = c.ID
	}
	m.users[c.ID] = c
	return c.Clone()
}

// Get returns a copy of the stored record, live or retired.
func (m *MockUserStore) Get(id domain.UserID) (*domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, false
	}
	return u.Clone(), true
}

// FindLiveByEmail implements the UserStore interface.
func (m *MockUserStore) FindLiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindLiveByEmailFn != nil {
		return m.FindLiveByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if u := m.liveByEmailLocked(email, 0); u != nil {
		return u.Clone(), nil
	}
	return nil, store.ErrUserNotFound
}

// FindLiveByID implements the UserStore interface.
func (m *MockUserStore) FindLiveByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if m.FindLiveByIDFn != nil {
		return m.FindLiveByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || !u.IsLive() {
		return nil, store.ErrUserNotFound
	}
	return u.Clone(), nil
}

// ListLive implements the UserStore interface.
func (m *MockUserStore) ListLive(ctx context.Context) ([]*domain.User, error) {
	if m.ListLiveFn != nil {
		return m.ListLiveFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*domain.User, 0, len(m.users))
	for id := domain.UserID(1); id <= m.lastID; id++ {
		if u, ok := m.users[id]; ok && u.IsLive() {
			users = append(users, u.Clone())
		}
	}
	return users, nil
}

// Insert implements the UserStore interface.
func (m *MockUserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	m.InsertCalls++
	m.mu.Unlock()

	if m.InsertFn != nil {
		return m.InsertFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLocked("insert", user, 0); err != nil {
		return nil, err
	}

	m.lastID++
	c := user.Clone()
	c.ID = m.lastID
	m.users[c.ID] = c
	return c.Clone(), nil
}

// Save implements the UserStore interface.
func (m *MockUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()

	if m.SaveFn != nil {
		return m.SaveFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return nil, store.NewWriteError("save", store.ReasonOther, "", store.ErrUserNotFound)
	}
	if err := m.checkLocked("save", user, user.ID); err != nil {
		return nil, err
	}

	c := user.Clone()
	m.users[c.ID] = c
	return c.Clone(), nil
}

// checkLocked emulates the NOT NULL columns and the partial unique index.
func (m *MockUserStore) checkLocked(op string, user *domain.User, self domain.UserID) error {
	for field, value := range map[string]string{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	} {
		if value == "" {
			return store.NewWriteError(op, store.ReasonRequiredFieldMissing, field,
				errors.New("null value violates not-null constraint"))
		}
	}

	if user.IsLive() && m.liveByEmailLocked(user.Email, self) != nil {
		return store.NewWriteError(op, store.ReasonUniqueViolation, "users_email_live_key",
			errors.New("duplicate key value violates unique constraint"))
	}
	return nil
}

func (m *MockUserStore) liveByEmailLocked(email string, except domain.UserID) *domain.User {
	for id, u := range m.users {
		if id != except && u.IsLive() && u.Email == email {
			return u
		}
	}
	return nil
}
