package postgresdb

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/tasktracker/schema"
)

// Migrate runs all pending migrations from schema/pgmigrations/*.sql files.
// Migrations are applied in alphabetical order (use numeric prefixes: 001_xxx.sql, 002_xxx.sql).
// Already-applied migrations are tracked in the schema_migrations table.
// This is a forward-only migration system - no rollbacks.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if err := StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	log.InfoContext(ctx, "migrate", "status", "running database migrations")

	if err := runMigrations(ctx, pool, log, schema.PostgresFS, schema.PostgresDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.InfoContext(ctx, "migrate", "status", "migrations complete")
	return nil
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger, migrationsFS fs.FS, migrationsDir string) error {
	if err := createMigrationsTable(ctx, pool); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	files, err := getMigrationFiles(migrationsFS, migrationsDir)
	if err != nil {
		return fmt.Errorf("get migration files: %w", err)
	}

	for _, file := range files {
		if err := applyMigration(ctx, pool, log, migrationsFS, path.Join(migrationsDir, file)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}

func createMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := pool.Exec(ctx, query)
	return err
}

// getMigrationFiles returns sorted list of .sql files from the migrations directory
func getMigrationFiles(migrationsFS fs.FS, migrationsDir string) ([]string, error) {
	var files []string

	err := fs.WalkDir(migrationsFS, migrationsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".sql") {
			files = append(files, path.Base(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// applyMigration applies a single migration if it hasn't been applied yet
func applyMigration(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger, migrationsFS fs.FS, filePath string) error {
	version := path.Base(filePath)

	content, err := fs.ReadFile(migrationsFS, filePath)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}

	checksum := fmt.Sprintf("%x", sha256.Sum256(content))

	var existingChecksum string
	err = pool.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", version).Scan(&existingChecksum)
	switch {
	case err == nil:
		if existingChecksum != checksum {
			return fmt.Errorf("checksum mismatch: migration %s has been modified after being applied (expected: %s, got: %s)",
				version, existingChecksum, checksum)
		}
		log.InfoContext(ctx, "migrate", "version", version, "status", "already applied")
		return nil
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("read applied checksum: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)", version, checksum); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.InfoContext(ctx, "migrate", "version", version, "status", "applied", "checksum", checksum[:8])
	return nil
}
