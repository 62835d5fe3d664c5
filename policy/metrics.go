package policy

import (
	"context"
	"net/http"
	"time"

	"github.com/seb7887/gofw/fetchx/observability"
)

// MetricsPolicy provides Prometheus metrics collection for HTTP requests.
// It tracks request duration, active requests and call outcomes.
type MetricsPolicy struct {
	collector *observability.MetricsCollector
}

// NewMetricsPolicy creates a new metrics policy with the given collector.
func NewMetricsPolicy(collector *observability.MetricsCollector) *MetricsPolicy {
	return &MetricsPolicy{
		collector: collector,
	}
}

// Execute implements the Policy interface by recording request metrics.
func (m *MetricsPolicy) Execute(ctx context.Context, req *http.Request, next Executor) (*http.Response, error) {
	host := observability.NormalizeHost(req.URL.Scheme, req.URL.Host)
	route := RouteFromContext(ctx)

	m.collector.IncrementActiveRequests(host)
	defer m.collector.DecrementActiveRequests(host)

	startTime := time.Now()
	resp, err := next(ctx, req)
	duration := time.Since(startTime)

	switch {
	case err != nil || resp == nil:
		m.collector.RecordRequestDuration(req.Method, route, host, 0, duration)
		m.collector.RecordOutcome(req.Method, route, host, observability.OutcomeError)
	default:
		m.collector.RecordRequestDuration(req.Method, route, host, resp.StatusCode, duration)
		m.collector.RecordOutcome(req.Method, route, host, observability.OutcomeForStatus(resp.StatusCode))
	}

	return resp, err
}

// Collector returns the underlying metrics collector.
func (m *MetricsPolicy) Collector() *observability.MetricsCollector {
	return m.collector
}
