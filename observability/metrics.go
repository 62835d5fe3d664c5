package observability

import (
	"net"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded by RecordOutcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// MetricsCollector provides Prometheus metrics collection for HTTP requests.
type MetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requests        *prometheus.CounterVec
	activeRequests  *prometheus.GaugeVec
}

// NewMetricsCollector creates a new Prometheus metrics collector.
// If registry is nil, uses the default Prometheus registry.
func NewMetricsCollector(registry prometheus.Registerer) *MetricsCollector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &MetricsCollector{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_client_request_duration_seconds",
				Help: "HTTP client request duration in seconds",
				Buckets: []float64{
					0.001, // 1ms
					0.005, // 5ms
					0.01,  // 10ms
					0.05,  // 50ms
					0.1,   // 100ms
					0.5,   // 500ms
					1.0,   // 1s
					2.0,   // 2s
					5.0,   // 5s
					10.0,  // 10s
				},
			},
			[]string{"method", "route", "status_code", "host"},
		),

		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_client_requests_total",
				Help: "Total number of HTTP client requests by outcome (success, failure, error)",
			},
			[]string{"method", "route", "host", "outcome"},
		),

		activeRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "http_client_active_requests",
				Help: "Number of active HTTP requests",
			},
			[]string{"host"},
		),
	}
}

// RecordRequestDuration records the duration of an HTTP request.
// statusCode is 0 when no response was received.
func (m *MetricsCollector) RecordRequestDuration(method, route, host string, statusCode int, duration time.Duration) {
	m.requestDuration.WithLabelValues(
		method,
		route,
		strconv.Itoa(statusCode),
		host,
	).Observe(duration.Seconds())
}

// RecordOutcome counts a finished request.
func (m *MetricsCollector) RecordOutcome(method, route, host, outcome string) {
	m.requests.WithLabelValues(method, route, host, outcome).Inc()
}

// IncrementActiveRequests increments the active requests gauge.
func (m *MetricsCollector) IncrementActiveRequests(host string) {
	m.activeRequests.WithLabelValues(host).Inc()
}

// DecrementActiveRequests decrements the active requests gauge.
func (m *MetricsCollector) DecrementActiveRequests(host string) {
	m.activeRequests.WithLabelValues(host).Dec()
}

// NormalizeHost normalizes a host string for use in metrics.
// Default ports are stripped to reduce cardinality.
func NormalizeHost(scheme, host string) string {
	h, port, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		return h
	}
	return host
}

// OutcomeForStatus maps a status code to the success/failure outcome.
func OutcomeForStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
