package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores"
)

// Migrate creates the schema (or indexes) for the configured backend.
func Migrate(ctx context.Context, backend *stores.Backend, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "migration started", "driver", backend.Driver, "step", "checking database status")

	if err := backend.StatusCheck(ctx); err != nil {
		return fmt.Errorf("database status check failed: %w", err)
	}

	log.InfoContext(ctx, "database status check successful", "step", "running migrations")

	if err := backend.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}

// Status reports whether the configured backend is reachable.
func Status(ctx context.Context, backend *stores.Backend, log *slog.Logger) error {
	if err := backend.StatusCheck(ctx); err != nil {
		return fmt.Errorf("%s unavailable: %w", backend.Driver, err)
	}
	log.InfoContext(ctx, "status", "driver", backend.Driver, "status", "ok")
	return nil
}
