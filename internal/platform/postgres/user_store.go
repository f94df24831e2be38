package postgres

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

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger,
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

func (s *PostgresUserStore) log(ctx context.Context) *slog.Logger {
	return logger.ForComponent(ctx, s.logger, "user_store")
}

// FindLiveByEmail implements store.UserStore.FindLiveByEmail.
// Returns store.ErrUserNotFound if no live user holds the email.
func (s *PostgresUserStore) FindLiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := s.log(ctx)

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", redact.Error(err)))
		return nil, err
	}

	return user, nil
}

// FindLiveByID implements store.UserStore.FindLiveByID.
// Returns store.ErrUserNotFound if the user does not exist or is retired.
func (s *PostgresUserStore) FindLiveByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	log := s.log(ctx)

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return nil, err
	}

	return user, nil
}

// ListLive implements store.UserStore.ListLive.
func (s *PostgresUserStore) ListLive(ctx context.Context) ([]*domain.User, error) {
	log := s.log(ctx)

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list users",
			slog.String("error", redact.Error(err)))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row",
				slog.String("error", redact.Error(err)))
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows",
			slog.String("error", redact.Error(err)))
		return nil, err
	}

	return users, nil
}

// Insert implements store.UserStore.Insert.
// The ID is assigned by the identity column; the caller's ID is ignored.
func (s *PostgresUserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := s.log(ctx)

	query := `
		INSERT INTO users (name, email, password_hash, is_active, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(s.db.QueryRowContext(ctx, query,
		store.NullableString(user.Name),
		store.NullableString(user.Email),
		store.NullableString(user.PasswordHash),
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
		nullTime(user.DeletedAt),
	))
	if err != nil {
		wErr := classifyWriteError("insert", err)
		log.Debug("user insert rejected",
			slog.String("reason", string(wErr.Reason)),
			slog.String("field", wErr.Field),
			slog.String("error", redact.Error(err)))
		return nil, wErr
	}

	log.Debug("user inserted", slog.String("user_id", created.ID.String()))
	return created, nil
}

// Save implements store.UserStore.Save.
// Every mutable column is written from user; id and created_at are never changed.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := s.log(ctx)

	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, is_active = $5, updated_at = $6, deleted_at = $7
		WHERE id = $1
		RETURNING ` + userColumns

	saved, err := scanUser(s.db.QueryRowContext(ctx, query,
		int64(user.ID),
		store.NullableString(user.Name),
		store.NullableString(user.Email),
		store.NullableString(user.PasswordHash),
		user.IsActive,
		user.UpdatedAt,
		nullTime(user.DeletedAt),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.NewWriteError("save", store.ReasonOther, "", store.ErrUserNotFound)
		}
		wErr := classifyWriteError("save", err)
		log.Debug("user save rejected",
			slog.String("reason", string(wErr.Reason)),
			slog.String("field", wErr.Field),
			slog.String("user_id", user.ID.String()),
			slog.String("error", redact.Error(err)))
		return nil, wErr
	}

	log.Debug("user saved", slog.String("user_id", saved.ID.String()))
	return saved, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		id        int64
		deletedAt sql.NullTime
	)
	if err := row.Scan(
		&id,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
		&deletedAt,
	); err != nil {
		return nil, err
	}

	u.ID = domain.UserID(id)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	if deletedAt.Valid {
		t := deletedAt.Time.UTC()
		u.DeletedAt = &t
	}
	return &u, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
