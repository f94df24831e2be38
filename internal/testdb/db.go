//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/userdir-api/internal/config"
	"github.com/phrazzld/userdir-api/internal/platform/migrate"
	"github.com/phrazzld/userdir-api/internal/redact"
)

// Environment variables checked for a test database URL, in order.
var urlEnvVars = []string{"DATABASE_URL", config.EnvPrefix + "_DATABASE_URL"}

const (
	setupTimeout = 30 * time.Second
	txTimeout    = 10 * time.Second
)

// GetTestDatabaseURL returns the first configured test database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// Open connects to the test database and applies every pending migration.
func Open(ctx context.Context, logger *slog.Logger) (*sql.DB, error) {
	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		return nil, errors.New("no test database URL configured")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database %s: %w", redact.String(dbURL), err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping test database %s: %w", redact.String(dbURL), err)
	}

	migrator, err := migrate.New(db, config.DriverPostgres, logger)
	if err == nil {
		err = migrator.Up(ctx)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// RunMain opens the shared test database, runs the package tests and closes
// it again. The tests are skipped, not failed, when no database is configured.
// Use it from TestMain.
func RunMain(m *testing.M, db **sql.DB) int {
	if ShouldSkipDatabaseTest() {
		fmt.Println("no test database URL set, skipping PostgreSQL integration tests")
		return 0
	}

	conn, err := Open(context.Background(), slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
	if err != nil {
		fmt.Println(redact.Error(err))
		return 1
	}
	*db = conn
	defer func() { _ = conn.Close() }()

	return m.Run()
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(ctx context.Context, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", redact.Error(err))
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back transaction: %v", redact.Error(err))
		}
	}()

	fn(ctx, tx)
}
