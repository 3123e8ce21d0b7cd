package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"
)

// TraceIDFn returns the trace id stored in a context.
type TraceIDFn func(ctx context.Context) string

// Logger is a wrapper around the standard slog.Logger.
type Logger struct {
	*slog.Logger
}

// options holds all configurable settings for the logger.
type options struct {
	level      slog.Level
	output     io.Writer
	format     string // "json" or "text"
	timeFormat string // "RFC3339", "Unix", "UnixMilli", or custom format
	service    string
	traceIDFn  TraceIDFn
}

// Options is the exportable configuration struct
type Options struct {
	Level      string `yaml:"level" toml:"level" json:"level" env:"LOG_LEVEL" default:"INFO"`
	Output     string `yaml:"output" toml:"output" json:"output" env:"LOG_OUTPUT" default:"STDOUT"`
	Format     string `yaml:"format" toml:"format" json:"format" env:"LOG_FORMAT" default:"json"`
	TimeFormat string `yaml:"time_format" toml:"time_format" json:"time_format" env:"LOG_TIME_FORMAT" default:"RFC3339"`
}

// Option takes config option and  returns formatted config
type Option func(*options)

// WithOutput overrides the destination configured through Options.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithService adds a constant "service" attribute to every record.
func WithService(name string) Option {
	return func(o *options) {
		o.service = name
	}
}

// WithTraceID adds a "trace_id" attribute resolved from the record context.
func WithTraceID(fn TraceIDFn) Option {
	return func(o *options) {
		o.traceIDFn = fn
	}
}

func NewDefault(opts ...Option) *Logger {
	options := Options{
		Level:      "INFO",
		Output:     "STDERR",
		Format:     "json",
		TimeFormat: time.RFC3339,
	}
	return newLogger(options, opts...)
}

// NewDiscard returns a logger that drops every record. Handy in tests.
func NewDiscard() *Logger {
	return NewDefault(WithOutput(io.Discard))
}

func NewStdLogger(logger *Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Logger.Handler(), level)
}

func NewFromEnv(prefix string, opts ...Option) (*Logger, error) {
	var options Options
	if err := environment.ParseEnvTags(prefix, &options); err != nil {
		return nil, fmt.Errorf("parsing logger config: %w", err)
	}
	return newLogger(options, opts...), nil
}

// new creates a new Logger with default settings and applies any given options.
func newLogger(cfg Options, opts ...Option) *Logger {
	level := parseLevel(cfg.Level)
	output := parseOutput(cfg.Output)

	options := &options{
		level:      level,
		output:     output,
		timeFormat: cfg.TimeFormat,
		format:     cfg.Format,
	}
	// Apply options
	for _, opt := range opts {
		opt(options)
	}

	// Ensure output is set
	if options.output == nil {
		options.output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level: options.level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Custom time formatting
			if a.Key == slog.TimeKey && options.timeFormat != "" {
				switch options.timeFormat {
				case "Unix":
					return slog.Int64(slog.TimeKey, a.Value.Time().Unix())
				case "UnixMilli":
					return slog.Int64(slog.TimeKey, a.Value.Time().UnixMilli())
				case "RFC3339Nano":
					return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339Nano))
				case "RFC3339":
					return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
				default:
					// Treat as custom format
					return slog.String(slog.TimeKey, a.Value.Time().Format(options.timeFormat))
				}
			}
			return a
		},
	}

	// Create base handler
	var handler slog.Handler
	switch options.format {
	case "text":
		handler = slog.NewTextHandler(options.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(options.output, handlerOpts)
	}

	if options.traceIDFn != nil {
		handler = &traceHandler{Handler: handler, traceIDFn: options.traceIDFn}
	}

	l := slog.New(handler)
	if options.service != "" {
		l = l.With("service", options.service)
	}

	return &Logger{
		Logger: l,
	}
}

// traceHandler decorates records with the trace id found in their context.
type traceHandler struct {
	slog.Handler
	traceIDFn TraceIDFn
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if tid := h.traceIDFn(ctx); tid != "" {
			r.AddAttrs(slog.String("trace_id", tid))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs), traceIDFn: h.traceIDFn}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name), traceIDFn: h.traceIDFn}
}
