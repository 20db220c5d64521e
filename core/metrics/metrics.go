package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of the catalog manager.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DriftComputations *prometheus.CounterVec
	DriftVariants     *prometheus.CounterVec
	MalformedPairs    prometheus.Counter

	CommitOperations *prometheus.CounterVec
	CommitDuration   prometheus.Histogram

	ActiveSessions prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New(cfg Config) *Metrics {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "catalog"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		DriftComputations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_drift_computations_total",
				Help: "Total number of variant drift computations",
			},
			[]string{"source"},
		),
		DriftVariants: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_drift_variants_total",
				Help: "Variants classified by drift computations",
			},
			[]string{"classification"},
		),
		MalformedPairs: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_drift_malformed_pairs_total",
				Help: "Option value pairs with an empty option title or value",
			},
		),

		CommitOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_commit_operations_total",
				Help: "Variant create and delete operations issued by commits",
			},
			[]string{"operation", "status"},
		),
		CommitDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_commit_duration_seconds",
				Help:    "Duration of drift commits in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_drift_sessions",
				Help: "Number of open drift sessions",
			},
		),
	}
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordDrift counts one drift computation and its classified variants.
func (m *Metrics) RecordDrift(source string, toCreate, toDelete, unchanged, malformed int) {
	if m == nil {
		return
	}
	m.DriftComputations.WithLabelValues(source).Inc()
	m.DriftVariants.WithLabelValues("create").Add(float64(toCreate))
	m.DriftVariants.WithLabelValues("delete").Add(float64(toDelete))
	m.DriftVariants.WithLabelValues("unchanged").Add(float64(unchanged))
	m.MalformedPairs.Add(float64(malformed))
}

// RecordCommitOperation counts a single create or delete issued by a commit.
func (m *Metrics) RecordCommitOperation(operation string, ok bool) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "failure"
	}
	m.CommitOperations.WithLabelValues(operation, status).Inc()
}

// TrackCommit returns a function that records the duration of a commit.
func (m *Metrics) TrackCommit() func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.CommitDuration.Observe(time.Since(start).Seconds())
	}
}

// SetActiveSessions updates the open session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

// Middleware records request counts and durations per route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// Route pattern keeps label cardinality bounded
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
