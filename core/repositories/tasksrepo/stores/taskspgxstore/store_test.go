package taskspgxstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/storetest"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func TestStore(t *testing.T) {
	url := os.Getenv("TASKS_TEST_PG_DATABASE_URL")
	if url == "" {
		t.Skip("TASKS_TEST_PG_DATABASE_URL not set")
	}

	log := logger.NewDiscard()
	pool, err := postgresdb.NewTestDB(url, postgresdb.WithLogger(log.Logger))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := postgresdb.Migrate(ctx, pool, log.Logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	storetest.Run(t, func(t *testing.T) tasksrepo.Storer {
		if _, err := pool.Exec(ctx, "TRUNCATE tasks"); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return taskspgxstore.NewStore(log, pool)
	})
}
