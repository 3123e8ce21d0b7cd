package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/infrastructure/web"
)

type fixedTrace struct{}

type traceKey struct{}

func (fixedTrace) SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey{}, "trace-1")
}

func (fixedTrace) GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceKey{}).(string)
	return v
}

func TestHandleRespondsWithStatusAndTrace(t *testing.T) {
	h := web.NewWebHandler(web.HandlerOptions{}, web.WithTelemetry(fixedTrace{}))
	h.POST("/api/things", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponseWithStatus(map[string]string{"name": "thing"}, http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/things", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := rec.Header().Get(web.TraceHeader); got != "trace-1" {
		t.Errorf("trace header = %q", got)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"name":"thing"}` {
		t.Errorf("body = %s", got)
	}
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				order = append(order, name)
				return next(ctx, r)
			}
		}
	}

	h := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mark("global")))
	api := h.Group("/api/", mark("group"))
	api.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		order = append(order, "handler")
		return nil
	}, mark("route"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	want := "global,group,route,handler"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := web.NewWebHandler(web.HandlerOptions{CORSOrigins: []string{"*"}})
	h.PATCH("/api/things/{id}", func(ctx context.Context, r *http.Request) web.Encoder {
		t.Fatal("handler must not run for preflight")
		return nil
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/things/abc", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PATCH") {
		t.Errorf("allow methods = %q", got)
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var v map[string]any
	if err := web.Decode(req, &v); err != web.ErrEmptyBody {
		t.Fatalf("err = %v, want ErrEmptyBody", err)
	}
}

func TestNormalizeAddr(t *testing.T) {
	tests := map[string]string{
		"":               ":5000",
		"5000":           ":5000",
		":8080":          ":8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
	}
	for in, want := range tests {
		if got := web.NormalizeAddr(in); got != want {
			t.Errorf("NormalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRespondHidesPlainErrors(t *testing.T) {
	h := web.NewWebHandler(web.HandlerOptions{})
	h.GET("/api/broken", func(ctx context.Context, r *http.Request) web.Encoder {
		return plainError{errors.New("dial tcp 10.0.0.1:5432: connection refused")}
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/broken", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Internal Server Error"}` {
		t.Errorf("body = %s", got)
	}
}

// plainError is an Encoder that is also an error but carries no status.
type plainError struct{ error }

func (plainError) Encode() ([]byte, string, error) {
	return []byte("leaked"), "text/plain", nil
}

func TestDecodeRejectsOversizedBody(t *testing.T) {
	body := `{"title":"` + strings.Repeat("x", web.MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var v map[string]any
	if err := web.Decode(req, &v); !errors.Is(err, web.ErrBodyTooLarge) {
		t.Fatalf("err = %v, want ErrBodyTooLarge", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Buy milk"}`))
	var v struct {
		Title string `json:"title"`
	}
	if err := web.Decode(req, &v); err != nil || v.Title != "Buy milk" {
		t.Fatalf("decode = %+v, %v", v, err)
	}
}

func TestNewServerFromEnv(t *testing.T) {
	t.Setenv("WEBTEST_PORT", "8081")
	t.Setenv("WEBTEST_SHUTDOWN_TIMEOUT", "3s")

	srv, err := web.NewServerFromEnv("WEBTEST")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.Addr != ":8081" {
		t.Errorf("addr = %s", srv.Addr)
	}
	if srv.Config.ShutdownTimeout != 3*time.Second || srv.ReadTimeout != 30*time.Second {
		t.Errorf("config = %+v", srv.Config)
	}
}
