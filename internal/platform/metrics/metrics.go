// Package metrics holds the Prometheus collectors for the patients service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ndpatients"

// Metrics groups the collectors. Each instance owns its registry, so tests can
// create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests          *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	ValidationOutcomes    *prometheus.CounterVec
	ValidationFieldErrors *prometheus.CounterVec
}

// New creates a Metrics instance with every collector registered, plus the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by method and route",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		ValidationOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patient_validations_total",
			Help:      "Patient record validations by result (valid or invalid)",
		}, []string{"result"}),
		ValidationFieldErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patient_validation_field_errors_total",
			Help:      "Patient validation failures by field",
		}, []string{"field"}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveValidation records one validation run and the fields that failed.
// Safe to call on a nil *Metrics.
func (m *Metrics) ObserveValidation(fields []string) {
	if m == nil {
		return
	}
	if len(fields) == 0 {
		m.ValidationOutcomes.WithLabelValues("valid").Inc()
		return
	}
	m.ValidationOutcomes.WithLabelValues("invalid").Inc()
	for _, f := range fields {
		m.ValidationFieldErrors.WithLabelValues(f).Inc()
	}
}

// Middleware records request counts and latency labelled by the matched route
// rather than the raw path, keeping label cardinality bounded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
