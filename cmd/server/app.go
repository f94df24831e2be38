package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/userdir-api/internal/config"
	"github.com/phrazzld/userdir-api/internal/platform/postgres"
	"github.com/phrazzld/userdir-api/internal/platform/sqlite"
	"github.com/phrazzld/userdir-api/internal/service"
	"github.com/phrazzld/userdir-api/internal/store"
)

// application holds the shared dependencies of the server and owns their
// cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	directory service.UserDirectory
}

// newApplication wires the user store for the configured driver into a
// UserDirectory. db must already be migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		app.userStore = postgres.NewPostgresUserStore(db, logger)
	case config.DriverSQLite:
		app.userStore = sqlite.NewUserStore(db, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}

	var err error
	app.directory, err = service.NewUserDirectory(app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user directory: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
