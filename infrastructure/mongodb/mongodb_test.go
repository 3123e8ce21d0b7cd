package mongodb_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestOpenRequiresURI(t *testing.T) {
	if _, err := mongodb.Open(context.Background(), mongodb.Options{}); err == nil {
		t.Fatal("expected error for empty uri")
	}
}

func TestHandleMongoError(t *testing.T) {
	if err := mongodb.HandleMongoError(nil); err != nil {
		t.Fatalf("nil mapped to %v", err)
	}
	wrapped := fmt.Errorf("find: %w", mongo.ErrNoDocuments)
	if err := mongodb.HandleMongoError(wrapped); !errors.Is(err, mongodb.ErrDBNotFound) {
		t.Fatalf("err = %v, want ErrDBNotFound", err)
	}
	other := errors.New("boom")
	if err := mongodb.HandleMongoError(other); err != other {
		t.Fatalf("err = %v, want passthrough", err)
	}
}

func TestOpenAndMigrate(t *testing.T) {
	uri := os.Getenv("TASKS_TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TASKS_TEST_MONGODB_URI not set")
	}

	ctx := context.Background()
	db, err := mongodb.Open(ctx, mongodb.Options{URI: uri},
		mongodb.WithDatabase("tasktracker_test"),
		mongodb.WithCollection("infra_tasks"),
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() {
		db.Collection().Drop(ctx)
		db.Close(ctx)
	}()

	if err := mongodb.StatusCheck(ctx, db); err != nil {
		t.Fatalf("status check: %v", err)
	}
	if err := mongodb.Migrate(ctx, db, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}
