package sqlitedb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jrazmi/tasktracker/schema"
)

// Migrate applies schema/sqlitemigrations/*.sql in order, recording each
// version and checksum in schema_migrations.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	return migrateFS(ctx, db, log, schema.SQLiteFS, schema.SQLiteDir)
}

func migrateFS(ctx context.Context, db *sql.DB, log *slog.Logger, migrationsFS fs.FS, dir string) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at INTEGER NOT NULL DEFAULT (unixepoch())
		)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("get migration files: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		if err := applyMigration(ctx, db, log, migrationsFS, path.Join(dir, file)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, log *slog.Logger, migrationsFS fs.FS, filePath string) error {
	version := path.Base(filePath)

	content, err := fs.ReadFile(migrationsFS, filePath)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	checksum := fmt.Sprintf("%x", sha256.Sum256(content))

	var existing string
	err = db.QueryRowContext(ctx, "SELECT checksum FROM schema_migrations WHERE version = ?", version).Scan(&existing)
	switch {
	case err == nil:
		if existing != checksum {
			return fmt.Errorf("checksum mismatch: migration %s has been modified after being applied", version)
		}
		log.DebugContext(ctx, "migrate", "version", version, "status", "already applied")
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("read applied checksum: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, checksum) VALUES (?, ?)", version, checksum); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.InfoContext(ctx, "migrate", "version", version, "status", "applied", "checksum", checksum[:8])
	return nil
}
