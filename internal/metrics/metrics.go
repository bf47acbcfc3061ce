// Package metrics exposes Prometheus instrumentation shared by all
// processes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the per-process collectors. Each process owns its registry
// so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	inFlight     prometheus.Gauge
	rpcCalls     *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
}

// New builds a registry with the standard process collectors plus the
// platform's HTTP and RPC instruments.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests processed, labeled by service, method, path and status.",
		}, []string{"service", "method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		}),
		rpcCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpc_client_calls_total",
			Help: "Outbound RPC calls, labeled by target service, command and outcome.",
		}, []string{"target", "command", "outcome"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rpc_client_duration_seconds",
			Help:    "Outbound RPC call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"target", "command"}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.inFlight, m.rpcCalls, m.rpcDuration)
	return m
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncrementInFlight marks a request as in progress.
func (m *Metrics) IncrementInFlight() { m.inFlight.Inc() }

// DecrementInFlight marks a request as finished.
func (m *Metrics) DecrementInFlight() { m.inFlight.Dec() }

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(service, method, path, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(service, method, path, status).Inc()
	m.httpDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// RecordRPCCall records one outbound RPC call.
func (m *Metrics) RecordRPCCall(target, command, outcome string, duration time.Duration) {
	m.rpcCalls.WithLabelValues(target, command, outcome).Inc()
	m.rpcDuration.WithLabelValues(target, command).Observe(duration.Seconds())
}
