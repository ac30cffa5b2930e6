// Package metrics exposes Prometheus collectors for the GraphQL operations,
// storage statements and HTTP responses of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "appointments"

// Outcomes recorded against an operation.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	storage    *prometheus.HistogramVec
	requests   *prometheus.CounterVec
}

// New builds a Metrics on its own registry, so tests can create as many as
// they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graphql_operations_total",
			Help:      "GraphQL resolver invocations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		storage: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "storage_duration_seconds",
			Help:      "Duration of storage statements.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"statement"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by status code.",
		}, []string{"code"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
		m.storage,
		m.requests,
	)
	return m
}

func (m *Metrics) Operation(operation, outcome string) {
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveStorage matches store.Observer.
func (m *Metrics) ObserveStorage(statement string, d time.Duration) {
	m.storage.WithLabelValues(statement).Observe(d.Seconds())
}

func (m *Metrics) Request(code int) {
	m.requests.WithLabelValues(strconv.Itoa(code)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
