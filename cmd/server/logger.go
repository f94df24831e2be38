package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/userdir-api/internal/config"
	"github.com/phrazzld/userdir-api/internal/platform/logger"
)

// setupAppLogger configures the process-wide JSON logger and records the
// non-sensitive parts of the loaded configuration.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)
	l.Debug("database configuration", "url_present", cfg.Database.URL != "")

	return l, nil
}
