// Package metrics exposes Prometheus metrics about document serialization.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics owns an isolated Prometheus registry and the serializer metrics.
type Metrics struct {
	// Registry is the registry every collector is registered with.
	Registry *prometheus.Registry

	documentsTotal    *prometheus.CounterVec
	serializeDuration *prometheus.HistogramVec
	includedResources *prometheus.HistogramVec
}

// New creates a Metrics instance. All metrics carry a constant service label.
// With defaultCollectors the Go runtime and process collectors are registered too.
func New(serviceName string, defaultCollectors bool) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, registry)

	m := &Metrics{
		Registry: registry,
		documentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jason",
			Name:      "documents_total",
			Help:      "Total number of serialized documents by primary type and outcome",
		}, []string{"type", "outcome"}),
		serializeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jason",
			Name:      "serialize_duration_seconds",
			Help:      "Time spent serializing a document",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"type"}),
		includedResources: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jason",
			Name:      "included_resources",
			Help:      "Number of included resources per document",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500},
		}, []string{"type"}),
	}

	wrapped.MustRegister(m.documentsTotal, m.serializeDuration, m.includedResources)

	if defaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// ObserveDocument records one serialization of typ started at start.
// included is ignored when err is non-nil.
func (m *Metrics) ObserveDocument(typ string, start time.Time, included int, err error) {
	if m == nil {
		return
	}
	m.serializeDuration.WithLabelValues(typ).Observe(time.Since(start).Seconds())
	if err != nil {
		m.documentsTotal.WithLabelValues(typ, OutcomeError).Inc()
		return
	}
	m.documentsTotal.WithLabelValues(typ, OutcomeSuccess).Inc()
	m.includedResources.WithLabelValues(typ).Observe(float64(included))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
