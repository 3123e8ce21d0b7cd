package taskboard_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jrazmi/tasktracker/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/clients/taskboard"
	"github.com/jrazmi/tasktracker/clients/tasksclient"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/tasktracker/infrastructure/sqlitedb"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/validation"
)

func newClient(t *testing.T) *tasksclient.Client {
	t.Helper()
	ctx := context.Background()
	log := logger.NewDiscard()

	db, err := sqlitedb.Open(sqlitedb.Options{Path: filepath.Join(t.TempDir(), "tasks.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlitedb.Migrate(ctx, db, log.Logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(log), mid.Panics()))
	tasksrepobridge.AddHttpRoutes(h.Group("/api"), tasksrepobridge.Config{
		Log:        log,
		Repository: tasksrepo.NewRepository(log, taskssqlitestore.NewStore(log, db)),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := tasksclient.New(srv.URL + "/api")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c
}

func TestSessionAgainstServer(t *testing.T) {
	ctx := context.Background()
	s := taskboard.NewSession(newClient(t))

	if n := s.Refresh(ctx); !n.Empty() {
		t.Fatalf("refresh: %+v", n)
	}
	if s.Board().Len() != 0 {
		t.Fatalf("expected empty board")
	}

	if n := s.Create(ctx, "", "x"); n.Kind != taskboard.NoticeError || n.Message != "title is required" {
		t.Fatalf("invalid create: %+v", n)
	}

	if n := s.Create(ctx, "Buy milk", "2%"); n.Message != "Task created successfully" {
		t.Fatalf("create: %+v", n)
	}
	created := s.Board().Tasks()[0]
	if created.ID == "" || created.Completed || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("created = %+v", created)
	}

	s.ToggleComplete(ctx, created.ID)
	toggled, _ := s.Board().Find(created.ID)
	if !toggled.Completed || !toggled.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("toggled = %+v", toggled)
	}

	s.ToggleComplete(ctx, created.ID)
	back, _ := s.Board().Find(created.ID)
	if back.Completed || !back.UpdatedAt.After(toggled.UpdatedAt) {
		t.Fatalf("toggled back = %+v", back)
	}

	if n := s.Edit(ctx, created.ID, tasksclient.UpdateTask{Title: validation.StringPtr("Buy oat milk")}); n.Kind != taskboard.NoticeSuccess {
		t.Fatalf("edit: %+v", n)
	}

	if n := s.Delete(ctx, created.ID); n.Message != "Task deleted successfully" {
		t.Fatalf("delete: %+v", n)
	}
	if n := s.Delete(ctx, created.ID); n.Message != "Failed to delete task" {
		t.Fatalf("second delete: %+v", n)
	}

	s.Refresh(ctx)
	if _, ok := s.Board().Find(created.ID); ok {
		t.Fatal("deleted task still listed")
	}
}

func TestSessionListOrder(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)
	s := taskboard.NewSession(client)
	for _, title := range []string{"A", "B", "C"} {
		s.Create(ctx, title, "d")
	}

	fresh := taskboard.NewSession(client)
	fresh.Refresh(ctx)

	var titles []string
	for _, task := range fresh.Board().Tasks() {
		titles = append(titles, task.Title)
	}
	if !equal(titles, []string{"C", "B", "A"}) {
		t.Fatalf("titles = %v", titles)
	}
}
