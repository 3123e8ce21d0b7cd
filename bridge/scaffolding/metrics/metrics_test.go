package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/metrics"
)

func TestCountersExposed(t *testing.T) {
	m := metrics.New("tasks")
	ctx := metrics.Set(context.Background(), m)

	if n := metrics.AddRequests(ctx, http.MethodGet); n != 1 {
		t.Fatalf("requests = %d, want 1", n)
	}
	metrics.AddRequests(ctx, http.MethodPost)
	metrics.AddErrors(ctx)
	metrics.AddPanics(ctx)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`tasks_requests_total{method="GET"} 1`,
		`tasks_requests_total{method="POST"} 1`,
		"tasks_errors_total 1",
		"tasks_panics_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestNoMetricsInContext(t *testing.T) {
	if n := metrics.AddRequests(context.Background(), http.MethodGet); n != 0 {
		t.Fatalf("requests = %d, want 0", n)
	}
	metrics.AddErrors(context.Background())
}
