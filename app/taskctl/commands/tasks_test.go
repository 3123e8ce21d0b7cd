package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/clients/tasksclient"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/tasktracker/infrastructure/sqlitedb"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func newAPI(t *testing.T) string {
	t.Helper()
	log := logger.NewDiscard()

	db, err := sqlitedb.Open(sqlitedb.Options{Path: filepath.Join(t.TempDir(), "tasks.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlitedb.Migrate(context.Background(), db, log.Logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(log), mid.Panics()))
	tasksrepobridge.AddHttpRoutes(h.Group("/api"), tasksrepobridge.Config{
		Log:        log,
		Repository: tasksrepo.NewRepository(log, taskssqlitestore.NewStore(log, db)),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func run(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	argv := append([]string{"taskctl", "--api-url", apiURL}, args...)
	err := NewRootCommand().Run(context.Background(), argv)
	return out.String(), err
}

func TestAddListDoneRemove(t *testing.T) {
	api := newAPI(t)

	out, err := run(t, api, "add", "--title", "Buy milk", "--description", "2%")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if strings.TrimSpace(out) != "Task created successfully" {
		t.Fatalf("add output = %q", out)
	}

	client, _ := tasksclient.New(api)
	tasks, err := client.List(context.Background())
	if err != nil || len(tasks) != 1 {
		t.Fatalf("list: %v %v", tasks, err)
	}
	id := tasks[0].ID

	out, err = run(t, api, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, id) || !strings.Contains(out, "Buy milk") {
		t.Fatalf("list output = %q", out)
	}

	out, err = run(t, api, "list", "-o", "yaml")
	if err != nil || !strings.Contains(out, "title: Buy milk") || !strings.Contains(out, "id: "+id) {
		t.Fatalf("yaml output = %q %v", out, err)
	}

	out, err = run(t, api, "show", "--output", "json", id)
	if err != nil || !strings.Contains(out, `"_id": "`+id+`"`) {
		t.Fatalf("json output = %q %v", out, err)
	}

	if _, err := run(t, api, "done", id); err != nil {
		t.Fatalf("done: %v", err)
	}
	task, _ := client.Get(context.Background(), id)
	if !task.Completed {
		t.Fatal("task not completed")
	}

	if _, err := run(t, api, "edit", "--title", "Buy oat milk", id); err != nil {
		t.Fatalf("edit: %v", err)
	}
	task, _ = client.Get(context.Background(), id)
	if task.Title != "Buy oat milk" || task.Description != "2%" {
		t.Fatalf("task = %+v", task)
	}

	out, err = run(t, api, "rm", id)
	if err != nil || strings.TrimSpace(out) != "Task deleted successfully" {
		t.Fatalf("rm: %q %v", out, err)
	}

	if _, err := run(t, api, "rm", id); err == nil || err.Error() != "Failed to delete task" {
		t.Fatalf("second rm err = %v", err)
	}
}

func TestAddRejectedShowsServerMessage(t *testing.T) {
	api := newAPI(t)
	_, err := run(t, api, "add", "--title", "  ")
	if err == nil || err.Error() != "title and description are required" {
		t.Fatalf("err = %v", err)
	}
}

func TestDoneUnknownID(t *testing.T) {
	api := newAPI(t)
	if _, err := run(t, api, "done", "nope"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestEditNeedsAField(t *testing.T) {
	if _, err := run(t, "http://127.0.0.1:1/api", "edit", "x"); err == nil || !strings.Contains(err.Error(), "nothing to change") {
		t.Fatalf("err = %v", err)
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	api := newAPI(t)
	if _, err := run(t, api, "list", "-o", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRequestsCarryUserAgent(t *testing.T) {
	agents := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	out, err := run(t, srv.URL+"/api", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out) != "No tasks found." {
		t.Fatalf("list output = %q", out)
	}
	if got := <-agents; got != "taskctl" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestShowErrorNamesAPI(t *testing.T) {
	api := newAPI(t)
	_, err := run(t, api, "show", "missing")
	if err == nil || !strings.Contains(err.Error(), "get task from "+api) {
		t.Fatalf("err = %v", err)
	}
}
