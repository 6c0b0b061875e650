// Package metrics exposes Prometheus counters for calculation traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a registry so that several servers (and tests) can run in
// one process.
type Recorder struct {
	registry *prometheus.Registry

	// Calculations counts calculations by operation and status.
	Calculations *prometheus.CounterVec
	// CalculationErrors counts rejected calculations by operation and error kind.
	CalculationErrors *prometheus.CounterVec
	// RequestDuration observes HTTP handler latency by route.
	RequestDuration *prometheus.HistogramVec
	// PolicyReloads counts rate policy reloads by status.
	PolicyReloads *prometheus.CounterVec
}

// New creates a Recorder with its own registry, including the Go runtime
// and process collectors.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincalc_calculations_total",
				Help: "Total number of calculations",
			},
			[]string{"operation", "status"},
		),
		CalculationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincalc_calculation_errors_total",
				Help: "Number of rejected calculations",
			},
			[]string{"operation", "kind"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincalc_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "code"},
		),
		PolicyReloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincalc_policy_reloads_total",
				Help: "Rate policy reloads",
			},
			[]string{"status"},
		),
	}
}

// Observe records the outcome of one calculation. kind is empty on success.
func (r *Recorder) Observe(operation, kind string) {
	if kind == "" {
		r.Calculations.WithLabelValues(operation, "success").Inc()
		return
	}
	r.Calculations.WithLabelValues(operation, "error").Inc()
	r.CalculationErrors.WithLabelValues(operation, kind).Inc()
}

// ObserveRequest records the latency of one HTTP request.
func (r *Recorder) ObserveRequest(route, method, code string, elapsed time.Duration) {
	r.RequestDuration.WithLabelValues(route, method, code).Observe(elapsed.Seconds())
}

// Reloaded records a policy reload attempt.
func (r *Recorder) Reloaded(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.PolicyReloads.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
