package mid_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/metrics"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func newHandler(m *metrics.Metrics) *web.WebHandler {
	log := logger.NewDiscard()
	return web.NewWebHandler(web.HandlerOptions{},
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log),
			mid.Metrics(m),
			mid.Panics(),
		),
	)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestErrorsKeepsAppErrors(t *testing.T) {
	h := newHandler(metrics.New("test"))
	h.GET("/missing", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "Task not found")
	})

	rec := serve(h, http.MethodGet, "/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Task not found"}` {
		t.Errorf("body = %s", got)
	}
}

func TestErrorsHidesInternalDetails(t *testing.T) {
	h := newHandler(metrics.New("test"))
	h.GET("/log-only", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.New(errs.InternalOnlyLog, errors.New("connection refused"))
	})

	rec := serve(h, http.MethodGet, "/log-only")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Internal Server Error"}` {
		t.Errorf("body = %s", got)
	}
}

func TestPanicsBecomeInternalErrors(t *testing.T) {
	m := metrics.New("test")
	h := newHandler(m)
	h.GET("/boom", func(ctx context.Context, r *http.Request) web.Encoder {
		panic("boom")
	})

	rec := serve(h, http.MethodGet, "/boom")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Internal Server Error"}` {
		t.Errorf("body = %s", got)
	}

	exp := serve(m.Handler(), http.MethodGet, "/metrics").Body.String()
	for _, want := range []string{"test_panics_total 1", "test_errors_total 1"} {
		if !strings.Contains(exp, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

// wrappedError carries an app error one level down the chain.
type wrappedError struct{ err error }

func (w wrappedError) Error() string                   { return "wrapped: " + w.err.Error() }
func (w wrappedError) Unwrap() error                   { return w.err }
func (w wrappedError) Encode() ([]byte, string, error) { return []byte(w.Error()), "text/plain", nil }

func TestErrorsUnwrapsAppErrors(t *testing.T) {
	h := newHandler(metrics.New("test"))
	h.GET("/wrapped", func(ctx context.Context, r *http.Request) web.Encoder {
		return wrappedError{err: errs.Newf(errs.InvalidArgument, "title is required")}
	})

	rec := serve(h, http.MethodGet, "/wrapped")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"title is required"}` {
		t.Errorf("body = %s", got)
	}
}

func TestErrorsHidesUncodedErrors(t *testing.T) {
	h := newHandler(metrics.New("test"))
	h.GET("/plain", func(ctx context.Context, r *http.Request) web.Encoder {
		return wrappedError{err: errors.New("dial tcp: refused")}
	})

	rec := serve(h, http.MethodGet, "/plain")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "refused") {
		t.Errorf("body leaked cause: %s", rec.Body.String())
	}
}
