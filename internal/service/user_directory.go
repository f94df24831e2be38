package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/userdir-api/internal/domain"
	"github.com/phrazzld/userdir-api/internal/platform/logger"
	"github.com/phrazzld/userdir-api/internal/store"
)

// UserDirectory owns the lifecycle rules for user records: creation,
// lookup, partial update and retirement (soft delete).
//
// Every failure is a *Error whose kind is one of ErrInvalidInput,
// ErrValidationFailed, ErrConflict, ErrNotFound or ErrInternal.
type UserDirectory interface {
	// Create persists a new live user. Returns ErrConflict if a live user
	// already holds the email.
	Create(ctx context.Context, params domain.NewUserParams) (*domain.User, error)

	// FindAll returns every live user.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// FindOne returns the live user with the given external ID.
	FindOne(ctx context.Context, id string) (*domain.User, error)

	// Update applies patch to the live user with the given ID.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)

	// Remove retires the live user with the given ID.
	Remove(ctx context.Context, id string) error
}

// Option configures a UserDirectoryImpl.
type Option func(*UserDirectoryImpl)

// WithClock replaces the time source used for created_at, updated_at and deleted_at.
func WithClock(now func() time.Time) Option {
	return func(d *UserDirectoryImpl) {
		if now != nil {
			d.now = now
		}
	}
}

// UserDirectoryImpl implements UserDirectory on top of a store.UserStore.
// It holds no mutable state; all state lives in the store.
type UserDirectoryImpl struct {
	users  store.UserStore
	logger *slog.Logger
	now    func() time.Time
}

// NewUserDirectory creates a UserDirectory backed by users.
func NewUserDirectory(users store.UserStore, logger *slog.Logger, opts ...Option) (UserDirectory, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &UserDirectoryImpl{
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

var _ UserDirectory = (*UserDirectoryImpl)(nil)

func (d *UserDirectoryImpl) log(ctx context.Context) *slog.Logger {
	return logger.ForComponent(ctx, d.logger, "user_directory")
}

// Create checks that no live user holds the email, then inserts.
// The store's uniqueness constraint remains the authority: a concurrent
// create that passed the same check surfaces as ErrConflict from the write.
func (d *UserDirectoryImpl) Create(ctx context.Context, params domain.NewUserParams) (*domain.User, error) {
	log := d.log(ctx)

	if err := d.ensureEmailAvailable(ctx, params.Email, "create"); err != nil {
		return nil, err
	}

	created, err := d.users.Insert(ctx, domain.NewUser(params, d.now()))
	if err != nil {
		return nil, d.classifyWrite(log, "create", err)
	}

	log.Info("user created",
		"user_id", created.ID)
	return created, nil
}

// FindAll returns every live user.
func (d *UserDirectoryImpl) FindAll(ctx context.Context) ([]*domain.User, error) {
	users, err := d.users.ListLive(ctx)
	if err != nil {
		d.log(ctx).Error("failed to list users",
			"error", err)
		return nil, internal("list", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// FindOne validates the ID and returns the matching live user.
func (d *UserDirectoryImpl) FindOne(ctx context.Context, id string) (*domain.User, error) {
	log := d.log(ctx)

	userID, err := domain.ParseUserID(id)
	if err != nil {
		log.Debug("rejected malformed user id",
			"id", id)
		return nil, invalidInput(err)
	}

	user, err := d.users.FindLiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found",
				"user_id", userID)
			return nil, notFound(err)
		}
		log.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, internal("find", err)
	}

	return user, nil
}

// Update resolves the target, re-checks email availability when the email
// changes, then applies the present patch fields and saves.
func (d *UserDirectoryImpl) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	log := d.log(ctx)

	user, err := d.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ChangesEmail(user.Email) {
		if err := d.ensureEmailAvailable(ctx, *patch.Email, "update"); err != nil {
			return nil, err
		}
	}

	// Mutate a copy so a failed write leaves nothing half-applied
	next := user.Clone()
	patch.Apply(next)
	next.UpdatedAt = d.now().UTC()

	saved, err := d.users.Save(ctx, next)
	if err != nil {
		return nil, d.classifyWrite(log, "update", err)
	}

	log.Info("user updated",
		"user_id", saved.ID)
	return saved, nil
}

// Remove retires the live user with the given ID. Any write failure is
// internal: no caller-supplied field data is involved.
func (d *UserDirectoryImpl) Remove(ctx context.Context, id string) error {
	log := d.log(ctx)

	user, err := d.FindOne(ctx, id)
	if err != nil {
		return err
	}

	retired := user.Clone()
	retired.Retire(d.now())

	if _, err := d.users.Save(ctx, retired); err != nil {
		log.Error("failed to retire user",
			"error", err,
			"user_id", user.ID)
		return internal("remove", err)
	}

	log.Info("user retired",
		"user_id", user.ID)
	return nil
}

// ensureEmailAvailable is the advisory uniqueness pre-check.
func (d *UserDirectoryImpl) ensureEmailAvailable(ctx context.Context, email, op string) error {
	existing, err := d.users.FindLiveByEmail(ctx, email)
	switch {
	case err == nil:
		d.log(ctx).Debug("email already held by a live user",
			"existing_user_id", existing.ID)
		return conflict(store.ErrEmailExists)
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	default:
		d.log(ctx).Error("failed to check email availability",
			"error", err)
		return internal(op, err)
	}
}

// classifyWrite maps a store write failure to a directory failure.
func (d *UserDirectoryImpl) classifyWrite(log *slog.Logger, op string, err error) error {
	switch store.ReasonOf(err) {
	case store.ReasonRequiredFieldMissing:
		log.Debug("store rejected write: required field missing",
			"op", op,
			"error", err)
		return validationFailed(err)
	case store.ReasonUniqueViolation:
		log.Debug("store rejected write: email already held",
			"op", op)
		return conflict(err)
	default:
		log.Error("failed to write user",
			"op", op,
			"error", err)
		return internal(op, err)
	}
}
