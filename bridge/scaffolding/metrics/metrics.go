// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"net/http"
	"runtime"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters exposed on /metrics.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	errors     prometheus.Counter
	panics     prometheus.Counter
	goroutines prometheus.Gauge
	total      atomic.Int64
}

// New constructs a Metrics value backed by its own registry.
func New(namespace string) *Metrics {
	m := Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of handled HTTP requests.",
		}, []string{"method"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Number of requests that ended in an error.",
		}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_total",
			Help:      "Number of recovered handler panics.",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines",
			Help:      "Goroutine count sampled every thousand requests.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.errors,
		m.panics,
		m.goroutines,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type ctxKey int

const key ctxKey = 1

// Set stores m in the context.
func Set(ctx context.Context, m *Metrics) context.Context {
	return context.WithValue(ctx, key, m)
}

func get(ctx context.Context) *Metrics {
	m, _ := ctx.Value(key).(*Metrics)
	return m
}

// AddRequests increments the request count and returns the running total.
func AddRequests(ctx context.Context, method string) int64 {
	m := get(ctx)
	if m == nil {
		return 0
	}
	m.requests.WithLabelValues(method).Inc()
	return m.total.Add(1)
}

// AddGoroutines samples the current goroutine count.
func AddGoroutines(ctx context.Context) int64 {
	m := get(ctx)
	if m == nil {
		return 0
	}
	g := int64(runtime.NumGoroutine())
	m.goroutines.Set(float64(g))
	return g
}

// AddErrors increments the error count.
func AddErrors(ctx context.Context) {
	if m := get(ctx); m != nil {
		m.errors.Inc()
	}
}

// AddPanics increments the panic count.
func AddPanics(ctx context.Context) {
	if m := get(ctx); m != nil {
		m.panics.Inc()
	}
}
