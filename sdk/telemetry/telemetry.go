// Package telemetry provides support for per-request trace identifiers.
package telemetry

import (
	"context"

	"github.com/jrazmi/tasktracker/sdk/cryptids"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
)

// NoTrace is reported when a context carries no trace id.
const NoTrace = "--------NOTRACE--------"

type Telemetry struct{}

// Creates a new telemetry instance
func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores a freshly generated trace id in ctx.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	tid, err := cryptids.GenerateID()
	if err != nil {
		return context.WithValue(ctx, traceIDKey, NoTrace)
	}
	return context.WithValue(ctx, traceIDKey, tid)
}

func (t Telemetry) GetTraceID(ctx context.Context) string {
	if v, ok := FromContext(ctx); ok {
		return v
	}
	return NoTrace
}

// FromContext returns the trace id stored in ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(traceIDKey).(string)
	return v, ok
}

// LogTraceID adapts FromContext for the logger, which skips empty ids.
func LogTraceID(ctx context.Context) string {
	v, _ := FromContext(ctx)
	return v
}
