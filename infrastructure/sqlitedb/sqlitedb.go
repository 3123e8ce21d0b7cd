// Package sqlitedb opens and migrates embedded SQLite databases.
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Set of error variables for CRUD operations.
var (
	ErrDBNotFound        = sql.ErrNoRows
	ErrDBDuplicatedEntry = errors.New("duplicated entry")
	ErrConstraint        = errors.New("constraint violation")
)

// Options represents the exportable database configuration
type Options struct {
	Path        string        `env:"SQLITE_PATH" default:"tasks.db"`
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" default:"5s"`
}

type options struct {
	path        string
	busyTimeout time.Duration
}

// Option is a function that configures the database options
type Option func(*options)

// WithPath overrides the database file path.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// NewFromEnv opens the database described by environment variables.
func NewFromEnv(prefix string, opts ...Option) (*sql.DB, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sqlite config: %w", err)
	}
	return Open(cfg, opts...)
}

// Open opens (or creates) the database file and verifies the connection.
func Open(cfg Options, opts ...Option) (*sql.DB, error) {
	o := &options{
		path:        cfg.Path,
		busyTimeout: cfg.BusyTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.path == "" {
		return nil, errors.New("sqlite path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", o.path, o.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", o.path, err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite %s: %w", o.path, err)
	}

	return db, nil
}

// StatusCheck returns nil if it can successfully talk to the database
func StatusCheck(ctx context.Context, db *sql.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return db.PingContext(ctx)
}

// HandleSQLiteError converts driver errors to application errors.
func HandleSQLiteError(err error) error {
	if err == nil {
		return nil
	}

	var serr *sqlite.Error
	if errors.As(err, &serr) {
		code := serr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return ErrDBDuplicatedEntry
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(serr.Error(), "UNIQUE constraint failed") {
				return ErrDBDuplicatedEntry
			}
			return fmt.Errorf("%w: %s", ErrConstraint, serr.Error())
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrDBNotFound
	}

	return err
}
