package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mockserver"

// Render error kinds.
const (
	KindStatusLine = "status_line"
	KindDirective  = "directive"
	KindRead       = "read"
)

// Metrics holds the collectors of one server. All methods are safe on a nil
// receiver, so callers never need to check whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	MatchesTotal      *prometheus.CounterVec
	MissesTotal       prometheus.Counter
	RenderErrorsTotal *prometheus.CounterVec
	ActiveRequests    prometheus.Gauge
	FileEventsTotal   *prometheus.CounterVec
}

// New creates and registers the mock server collectors on a fresh registry,
// together with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total requests served.",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of mock requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
		MatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "matches_total",
				Help:      "Requests resolved to a mock file.",
			},
			[]string{"stage", "wildcard"},
		),
		MissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "misses_total",
				Help:      "Requests for which no mock file exists.",
			},
		),
		RenderErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "render_errors_total",
				Help:      "Mock files that failed to render.",
			},
			[]string{"kind"},
		),
		ActiveRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_requests",
				Help:      "Number of requests being processed.",
			},
		),
		FileEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "file_events_total",
				Help:      "Changes observed in the mock directory.",
			},
			[]string{"op"},
		),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.MatchesTotal,
		m.MissesTotal,
		m.RenderErrorsTotal,
		m.ActiveRequests,
		m.FileEventsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Begin marks a request as in flight and returns the function that ends it.
func (m *Metrics) Begin() func() {
	if m == nil {
		return func() {}
	}
	m.ActiveRequests.Inc()
	return m.ActiveRequests.Dec
}

// ObserveRequest records a finished request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.RequestsTotal.WithLabelValues(method, code).Inc()
	m.RequestDuration.WithLabelValues(method, code).Observe(d.Seconds())
}

// RecordMatch records a resolved mock.
func (m *Metrics) RecordMatch(stage string, wildcard bool) {
	if m == nil {
		return
	}
	m.MatchesTotal.WithLabelValues(stage, strconv.FormatBool(wildcard)).Inc()
}

// RecordMiss records a request that nothing mocks.
func (m *Metrics) RecordMiss() {
	if m == nil {
		return
	}
	m.MissesTotal.Inc()
}

// RecordRenderError records a mock file that failed to render.
func (m *Metrics) RecordRenderError(kind string) {
	if m == nil {
		return
	}
	m.RenderErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordFileEvent records a change observed in the mock directory.
func (m *Metrics) RecordFileEvent(op string) {
	if m == nil {
		return
	}
	m.FileEventsTotal.WithLabelValues(op).Inc()
}
