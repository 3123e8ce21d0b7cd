// Package stores selects and opens the task storage backend.
package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmongostore"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/infrastructure/sqlitedb"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Supported drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options selects a backend.
type Options struct {
	Driver      string `env:"STORE_DRIVER" default:"mongo"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" default:"true"`
}

// Backend is an opened store with its lifecycle hooks.
type Backend struct {
	Driver      string
	Storer      tasksrepo.Storer
	StatusCheck func(ctx context.Context) error
	Migrate     func(ctx context.Context) error
	Close       func(ctx context.Context) error
}

// OpenFromEnv reads Options under prefix and opens the chosen backend. The
// connection is verified before returning.
func OpenFromEnv(ctx context.Context, log *logger.Logger, prefix string) (*Backend, Options, error) {
	var opts Options
	if err := environment.ParseEnvTags(prefix, &opts); err != nil {
		return nil, opts, fmt.Errorf("parsing store config: %w", err)
	}

	b, err := Open(ctx, log, prefix, opts.Driver)
	return b, opts, err
}

// Open opens the backend named by driver, reading its settings under prefix.
func Open(ctx context.Context, log *logger.Logger, prefix, driver string) (*Backend, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMongo, "mongodb":
		db, err := mongodb.NewFromEnv(prefix, mongodb.WithLogger(log.Logger))
		if err != nil {
			return nil, fmt.Errorf("configuring mongodb support: %w", err)
		}
		return &Backend{
			Driver:      DriverMongo,
			Storer:      tasksmongostore.NewStore(log, db.Collection()),
			StatusCheck: func(ctx context.Context) error { return mongodb.StatusCheck(ctx, db) },
			Migrate:     func(ctx context.Context) error { return mongodb.Migrate(ctx, db, log.Logger) },
			Close:       db.Close,
		}, nil

	case DriverPostgres, "postgresql", "pg":
		pool, err := postgresdb.NewFromEnv(prefix, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return nil, fmt.Errorf("configuring postgres support: %w", err)
		}
		return &Backend{
			Driver:      DriverPostgres,
			Storer:      taskspgxstore.NewStore(log, pool),
			StatusCheck: func(ctx context.Context) error { return postgresdb.StatusCheck(ctx, pool) },
			Migrate:     func(ctx context.Context) error { return postgresdb.Migrate(ctx, pool, log.Logger) },
			Close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case DriverSQLite:
		db, err := sqlitedb.NewFromEnv(prefix)
		if err != nil {
			return nil, fmt.Errorf("configuring sqlite support: %w", err)
		}
		return &Backend{
			Driver:      DriverSQLite,
			Storer:      taskssqlitestore.NewStore(log, db),
			StatusCheck: func(ctx context.Context) error { return sqlitedb.StatusCheck(ctx, db) },
			Migrate:     func(ctx context.Context) error { return sqlitedb.Migrate(ctx, db, log.Logger) },
			Close:       func(context.Context) error { return db.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", driver)
}
