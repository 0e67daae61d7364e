package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-suntimes/internal/sun"
)

// Metrics collects server and engine metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	computations    *prometheus.CounterVec
	absentEvents    *prometheus.CounterVec
	rateLimited     prometheus.Counter
	streamClients   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "suntimes_request_duration_seconds",
				Help:    "Time spent processing HTTP requests",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"path"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suntimes_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "code"},
		),
		computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suntimes_computations_total",
				Help: "Days of sun times computed",
			},
			[]string{"backend"},
		),
		absentEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suntimes_absent_events_total",
				Help: "Events reported as not happening",
			},
			[]string{"backend", "event"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "suntimes_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
		streamClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "suntimes_stream_clients",
				Help: "Connected websocket clients",
			},
		),
	}

	m.registry.MustRegister(
		m.requestDuration,
		m.requestsTotal,
		m.computations,
		m.absentEvents,
		m.rateLimited,
		m.streamClients,
		collectors.NewGoCollector(),
	)
	return m
}

// RecordRequest records one served request.
func (m *Metrics) RecordRequest(path, code string, duration time.Duration) {
	m.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(path, code).Inc()
}

// RecordTimes records one computed day and its absent events.
func (m *Metrics) RecordTimes(backend string, st sun.SunTimes) {
	m.computations.WithLabelValues(backend).Inc()
	for _, e := range st.Absent() {
		m.absentEvents.WithLabelValues(backend, e.String()).Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
