package web

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"
)

// WebServer wraps http.Server with additional configuration
type WebServer struct {
	*http.Server
	Config ServerConfig
}

// ServerConfig holds web server configuration (exportable)
type ServerConfig struct {
	Port            string        `env:"PORT" default:":5000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"20s"`
}

// internal serveroptions struct for runtime configuration
type serveroptions struct {
	handler  http.Handler
	errorLog *log.Logger
	config   ServerConfig
}

// ServerOption takes config serveroption and returns formatted config
type ServerOption func(*serveroptions)

// WithHandler sets the HTTP handler
func WithHandler(handler http.Handler) ServerOption {
	return func(o *serveroptions) {
		o.handler = handler
	}
}

// WithErrorLog sets the error logger
func WithErrorLog(errorLog *log.Logger) ServerOption {
	return func(o *serveroptions) {
		o.errorLog = errorLog
	}
}

// NewServerFromEnv creates a new WebServer from environment variables
func NewServerFromEnv(prefix string, opts ...ServerOption) (*WebServer, error) {
	var config ServerConfig
	if err := environment.ParseEnvTags(prefix, &config); err != nil {
		return nil, fmt.Errorf("parsing webserver config: %w", err)
	}

	return newWebServer(config, opts...), nil
}

// NormalizeAddr turns a bare port number such as "5000" into a listen
// address. Anything containing a colon is returned unchanged.
func NormalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":5000"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// newWebServer creates a new WebServer with given config and applies serveroptions
func newWebServer(cfg ServerConfig, opts ...ServerOption) *WebServer {
	internalOpts := &serveroptions{
		config: cfg,
	}

	for _, opt := range opts {
		opt(internalOpts)
	}
	internalOpts.config.Port = NormalizeAddr(internalOpts.config.Port)

	server := &http.Server{
		Addr:         internalOpts.config.Port,
		Handler:      internalOpts.handler,
		ReadTimeout:  internalOpts.config.ReadTimeout,
		WriteTimeout: internalOpts.config.WriteTimeout,
		IdleTimeout:  internalOpts.config.IdleTimeout,
		ErrorLog:     internalOpts.errorLog,
	}

	return &WebServer{
		Server: server,
		Config: internalOpts.config,
	}
}
