package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/app/tasktracker/api"
	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/metrics"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/tasktracker/infrastructure/sqlitedb"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

func newHandler(t *testing.T, check func(context.Context) error) (*web.WebHandler, *metrics.Metrics) {
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

	m := metrics.New("tasks")
	h := web.NewWebHandler(web.HandlerOptions{CORSOrigins: []string{"*"}},
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(mid.Logger(log), mid.Errors(log), mid.Metrics(m), mid.Panics()),
	)
	api.AddHandlers(h, config.TaskTracker{
		Logger:       log,
		Metrics:      m,
		Repositories: config.Repositories{Tasks: tasksrepo.NewRepository(log, taskssqlitestore.NewStore(log, db))},
		StatusCheck:  check,
	})
	return h, m
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	h, _ := newHandler(t, func(context.Context) error { return nil })

	rec := serve(h, http.MethodGet, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
	if rec.Header().Get(web.TraceHeader) == "" {
		t.Error("missing trace header")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestHealthUnavailable(t *testing.T) {
	h, _ := newHandler(t, func(context.Context) error { return errors.New("down") })

	rec := serve(h, http.MethodGet, "/api/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMetricsCountRequests(t *testing.T) {
	h, _ := newHandler(t, nil)

	serve(h, http.MethodGet, "/api/tasks")
	serve(h, http.MethodPatch, "/api/tasks/missing")

	body := serve(h, http.MethodGet, "/metrics").Body.String()
	for _, want := range []string{
		`tasks_requests_total{method="GET"} 1`,
		`tasks_requests_total{method="PATCH"} 1`,
		"tasks_errors_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
