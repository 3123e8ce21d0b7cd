// Package schema contains embedded migration files.
package schema

import "embed"

const (
	PostgresDir = "pgmigrations"
	SQLiteDir   = "sqlitemigrations"
)

// PostgresFS contains all SQL migration files from the pgmigrations directory.
//
//go:embed pgmigrations/*.sql
var PostgresFS embed.FS

// SQLiteFS contains all SQL migration files from the sqlitemigrations directory.
//
//go:embed sqlitemigrations/*.sql
var SQLiteFS embed.FS
