// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so tests and multiple servers never collide on
// the global default registerer.
type Metrics struct {
	reg *prometheus.Registry

	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge
	BookMutations          *prometheus.CounterVec
	EventsDropped          prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}, []string{"method", "route"}),
		HTTPRequestsInProgress: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "HTTP requests currently being served.",
		}),
		BookMutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "library_book_mutations_total",
			Help: "Book create/update/delete attempts by outcome.",
		}, []string{"op", "result"}),
		EventsDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "library_events_dropped_total",
			Help: "Change events discarded because the queue was full or closed.",
		}),
	}
}

// BookMutation records one mutation outcome.
func (m *Metrics) BookMutation(op, result string) {
	m.BookMutations.WithLabelValues(op, result).Inc()
}

// DropEvent is suitable as events.QueueOptions.OnDrop.
func (m *Metrics) DropEvent() { m.EventsDropped.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }
