// Package web contains a small web framework extension.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jrazmi/tasktracker/sdk/environment"
)

// Encoder defines behavior that can encode a data model and provide
// the content type for that encoding.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// HandlerFunc represents a function that handles a http request and returns something to encode
type HandlerFunc func(ctx context.Context, r *http.Request) Encoder

// Middleware wraps a HandlerFunc
type Middleware func(HandlerFunc) HandlerFunc

// Telemetry stamps and reads the per-request trace id.
type Telemetry interface {
	SetTraceID(ctx context.Context) context.Context
	GetTraceID(ctx context.Context) string
}

// TraceHeader carries the request trace id back to the caller.
const TraceHeader = "X-Trace-Id"

type WebHandler struct {
	mux       *http.ServeMux
	log       *slog.Logger
	telemetry Telemetry

	corsOrigins []string

	// Middleware stacks
	globalMiddleware []Middleware
}

// HandlerOptions is the exportable configuration struct
type HandlerOptions struct {
	CORSOrigins []string `env:"CORS_ORIGINS" default:"*" separator:","`
}

type HandlerOption func(*handlerOptions)

// internal options struct for additional runtime configuration
type handlerOptions struct {
	log              *slog.Logger
	telemetry        Telemetry
	globalMiddleware []Middleware
}

// WithLogging sets the logger
func WithLogging(log *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.log = log
	}
}

// WithTelemetry sets the telemetry provider
func WithTelemetry(tel Telemetry) HandlerOption {
	return func(o *handlerOptions) {
		o.telemetry = tel
	}
}

// WithGlobalMiddleware adds global middleware
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(o *handlerOptions) {
		o.globalMiddleware = append(o.globalMiddleware, middleware...)
	}
}

// NewWebHandlerFromEnv creates a new WebHandler from environment variables
func NewWebHandlerFromEnv(prefix string, opts ...HandlerOption) (*WebHandler, error) {
	var options HandlerOptions
	if err := environment.ParseEnvTags(prefix, &options); err != nil {
		return nil, fmt.Errorf("parsing webhandler config: %w", err)
	}
	return newWebHandler(options, opts...), nil
}

// NewWebHandler creates a WebHandler from an explicit configuration.
func NewWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	return newWebHandler(cfg, opts...)
}

// newWebHandler creates a new WebHandler with given config and applies options
func newWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	internalOpts := &handlerOptions{}

	for _, opt := range opts {
		opt(internalOpts)
	}

	handler := &WebHandler{
		mux:              http.NewServeMux(),
		log:              internalOpts.log,
		telemetry:        internalOpts.telemetry,
		corsOrigins:      cfg.CORSOrigins,
		globalMiddleware: internalOpts.globalMiddleware,
	}

	// CORS runs first, before Logger, Errors, etc.
	if len(handler.corsOrigins) > 0 {
		handler.globalMiddleware = append([]Middleware{handler.corsMiddleware()}, handler.globalMiddleware...)
	}

	return handler
}

func (a *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	finalHandler := a.buildHandlerChain(handler, middleware...)

	httpHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx := a.begin(w, r)

		resp := finalHandler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && a.log != nil {
			a.log.ErrorContext(ctx, "respond error", "error", err)
		}
	}

	pattern := fmt.Sprintf("%s %s", strings.ToUpper(method), path)
	a.mux.HandleFunc(pattern, httpHandler)
}

// HandleRaw registers a plain http.Handler. Global middleware is not applied.
func (a *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	a.mux.Handle(pattern, handler)
}

// ServeHTTP implements http.Handler. CORS preflight requests are answered
// here so that routes do not have to register OPTIONS themselves.
func (a *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions && len(a.corsOrigins) > 0 {
		ctx := a.begin(w, r)
		resp := a.corsMiddleware()(func(context.Context, *http.Request) Encoder { return nil })(ctx, r)
		if err := Respond(ctx, w, resp); err != nil && a.log != nil {
			a.log.ErrorContext(ctx, "respond error", "error", err)
		}
		return
	}
	a.mux.ServeHTTP(w, r)
}

// begin prepares the request context and the headers shared by every route.
func (a *WebHandler) begin(w http.ResponseWriter, r *http.Request) context.Context {
	ctx := r.Context()
	if a.telemetry != nil {
		ctx = a.telemetry.SetTraceID(ctx)
		w.Header().Set(TraceHeader, a.telemetry.GetTraceID(ctx))
	}
	return setWriter(ctx, w)
}
