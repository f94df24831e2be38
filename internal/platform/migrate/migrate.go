// Package migrate runs the embedded goose migrations of the configured
// database driver.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/phrazzld/userdir-api/internal/config"
	"github.com/phrazzld/userdir-api/internal/platform/postgres"
	"github.com/phrazzld/userdir-api/internal/platform/sqlite"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// TableName is the name of the table used by goose to track migrations.
const TableName = "schema_migrations"

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// Migrator applies the embedded migrations for one driver.
type Migrator struct {
	provider *goose.Provider
	logger   *slog.Logger
}

// New creates a Migrator for db using the migrations of driver
// (config.DriverPostgres or config.DriverSQLite).
func New(db *sql.DB, driver string, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		dialect    database.Dialect
		migrations fs.FS
	)
	switch driver {
	case config.DriverPostgres:
		dialect, migrations = postgres.Dialect, postgres.Migrations()
	case config.DriverSQLite:
		dialect, migrations = sqlite.Dialect, sqlite.Migrations()
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	versionStore, err := database.NewStore(dialect, TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration store: %w", err)
	}

	provider, err := goose.NewProvider("", db, migrations, goose.WithStore(versionStore))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Migrator{
		provider: provider,
		logger:   logger.With("component", "migrator", "driver", driver),
	}, nil
}

// Run executes command: up, down, status or version.
func (m *Migrator) Run(ctx context.Context, command string) error {
	start := time.Now()
	m.logger.Info("running migration command", "command", command)

	var err error
	switch command {
	case CommandUp:
		err = m.Up(ctx)
	case CommandDown:
		err = m.down(ctx)
	case CommandStatus:
		err = m.status(ctx)
	case CommandVersion:
		var version int64
		version, err = m.Version(ctx)
		if err == nil {
			m.logger.Info("current migration version", "version", version)
		}
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, status or version)",
			command,
		)
	}
	if err != nil {
		m.logger.Error("migration command failed",
			"command", command,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	m.logger.Info("migration command completed",
		"command", command,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.logResult(r)
	}
	if err != nil {
		return err
	}
	if len(results) == 0 {
		m.logger.Info("no pending migrations")
	}
	return nil
}

// Version returns the current schema version, 0 for an empty database.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return m.provider.GetDBVersion(ctx)
}

func (m *Migrator) down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if result != nil {
		m.logResult(result)
	}
	return err
}

func (m *Migrator) status(ctx context.Context) error {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return err
	}
	for _, s := range statuses {
		attrs := []any{
			"version", s.Source.Version,
			"path", s.Source.Path,
			"state", string(s.State),
		}
		if !s.AppliedAt.IsZero() {
			attrs = append(attrs, "applied_at", s.AppliedAt)
		}
		m.logger.Info("migration status", attrs...)
	}
	return nil
}

func (m *Migrator) logResult(r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	attrs := []any{
		"version", r.Source.Version,
		"path", r.Source.Path,
		"direction", r.Direction,
		"duration_ms", r.Duration.Milliseconds(),
	}
	if r.Error != nil {
		m.logger.Error("migration failed", append(attrs, "error", r.Error)...)
		return
	}
	m.logger.Info("migration applied", attrs...)
}
