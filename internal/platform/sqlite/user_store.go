package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/userdir-api/internal/domain"
	"github.com/phrazzld/userdir-api/internal/platform/logger"
	"github.com/phrazzld/userdir-api/internal/redact"
	"github.com/phrazzld/userdir-api/internal/store"
)

const userColumns = `id, name, email, password_hash, is_active, created_at, updated_at, deleted_at`

// UserStore implements store.UserStore on SQLite.
// Timestamps are stored as Unix milliseconds.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a SQLite UserStore on db.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger,
	}
}

var _ store.UserStore = (*UserStore)(nil)

func (s *UserStore) log(ctx context.Context) *slog.Logger {
	return logger.ForComponent(ctx, s.logger, "user_store")
}

// FindLiveByEmail implements store.UserStore.
func (s *UserStore) FindLiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND deleted_at IS NULL`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		s.log(ctx).Error("failed to get user by email",
			slog.String("error", redact.Error(err)))
		return nil, err
	}
	return user, nil
}

// FindLiveByID implements store.UserStore.
func (s *UserStore) FindLiveByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? AND deleted_at IS NULL`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		s.log(ctx).Error("failed to get user by ID",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return nil, err
	}
	return user, nil
}

// ListLive implements store.UserStore.
func (s *UserStore) ListLive(ctx context.Context) ([]*domain.User, error) {
	log := s.log(ctx)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		log.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", redact.Error(err)))
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", slog.String("error", redact.Error(err)))
		return nil, err
	}
	return users, nil
}

// Insert implements store.UserStore.
func (s *UserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, is_active, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + userColumns

	created, err := scanUser(s.db.QueryRowContext(ctx, query,
		store.NullableString(user.Name),
		store.NullableString(user.Email),
		store.NullableString(user.PasswordHash),
		user.IsActive,
		toMillis(user.CreatedAt),
		toMillis(user.UpdatedAt),
		nullMillis(user.DeletedAt),
	))
	if err != nil {
		wErr := classifyWriteError("insert", err)
		s.log(ctx).Debug("user insert rejected",
			slog.String("reason", string(wErr.Reason)),
			slog.String("field", wErr.Field),
			slog.String("error", redact.Error(err)))
		return nil, wErr
	}
	return created, nil
}

// Save implements store.UserStore.
func (s *UserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = ?, email = ?, password_hash = ?, is_active = ?, updated_at = ?, deleted_at = ?
		WHERE id = ?
		RETURNING ` + userColumns

	saved, err := scanUser(s.db.QueryRowContext(ctx, query,
		store.NullableString(user.Name),
		store.NullableString(user.Email),
		store.NullableString(user.PasswordHash),
		user.IsActive,
		toMillis(user.UpdatedAt),
		nullMillis(user.DeletedAt),
		int64(user.ID),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.NewWriteError("save", store.ReasonOther, "", store.ErrUserNotFound)
		}
		wErr := classifyWriteError("save", err)
		s.log(ctx).Debug("user save rejected",
			slog.String("reason", string(wErr.Reason)),
			slog.String("field", wErr.Field),
			slog.String("user_id", user.ID.String()),
			slog.String("error", redact.Error(err)))
		return nil, wErr
	}
	return saved, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u                    domain.User
		id                   int64
		createdAt, updatedAt int64
		deletedAt            sql.NullInt64
	)
	if err := row.Scan(
		&id,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsActive,
		&createdAt,
		&updatedAt,
		&deletedAt,
	); err != nil {
		return nil, err
	}

	u.ID = domain.UserID(id)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	if deletedAt.Valid {
		t := fromMillis(deletedAt.Int64)
		u.DeletedAt = &t
	}
	return &u, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*t), Valid: true}
}
