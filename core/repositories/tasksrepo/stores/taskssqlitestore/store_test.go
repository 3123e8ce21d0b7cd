package taskssqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/storetest"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/tasktracker/infrastructure/sqlitedb"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) tasksrepo.Storer {
		db, err := sqlitedb.Open(sqlitedb.Options{Path: filepath.Join(t.TempDir(), "tasks.db")})
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		log := logger.NewDiscard()
		if err := sqlitedb.Migrate(context.Background(), db, log.Logger); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		return taskssqlitestore.NewStore(log, db)
	})
}
