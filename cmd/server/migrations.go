package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/userdir-api/internal/config"
	"github.com/phrazzld/userdir-api/internal/platform/migrate"
)

// handleMigrations runs a single migration command against db using the
// migrations embedded for the configured driver.
func handleMigrations(
	ctx context.Context,
	db *sql.DB,
	cfg *config.Config,
	logger *slog.Logger,
	command string,
) error {
	migrator, err := migrate.New(db, cfg.Database.Driver, logger)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}

	if err := migrator.Run(ctx, command); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}
