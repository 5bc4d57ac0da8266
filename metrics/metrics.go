// Package metrics owns the process's prometheus registry and the counters
// named in spec §6.4: api_request_count and api_failed_request_count, which
// ExtractRange increments per call and per failed call. Mounting the
// registry under an HTTP handler is the external CLI/server collaborator's
// job; this package only owns the registry and counter objects.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps a dedicated prometheus.Registry (not the global default,
// mirroring the teacher's HealthLogger) with the counters ExtractRange
// reports against.
type Registry struct {
	registry *prometheus.Registry

	requestCount       prometheus.Counter
	failedRequestCount prometheus.Counter
}

// New builds a Registry with every counter registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		requestCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "api_request_count",
			Help: "Total number of ExtractRange stream-open attempts.",
		}),
		failedRequestCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "api_failed_request_count",
			Help: "Total number of ExtractRange stream-open attempts that failed.",
		}),
	}

	reg.MustRegister(r.requestCount, r.failedRequestCount)
	return r
}

// RecordRequest implements core.MetricsRecorder.
func (r *Registry) RecordRequest() { r.requestCount.Inc() }

// RecordFailedRequest implements core.MetricsRecorder.
func (r *Registry) RecordFailedRequest() { r.failedRequestCount.Inc() }

// Registry exposes the underlying prometheus.Registry for collectors
// registered by other packages (e.g. orchestrator loop health).
func (r *Registry) Registry() *prometheus.Registry { return r.registry }

// Handler returns the HTTP handler an external server mounts at /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
