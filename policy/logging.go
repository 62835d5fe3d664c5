package policy

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// LoggingPolicy writes one structured log event per transport invocation.
// Successful responses are logged at debug level, non-2xx responses at warn
// level and transport errors at error level.
type LoggingPolicy struct {
	logger zerolog.Logger
}

// NewLoggingPolicy creates a logging policy writing to logger.
func NewLoggingPolicy(logger zerolog.Logger) *LoggingPolicy {
	return &LoggingPolicy{logger: logger}
}

// Execute implements the Policy interface.
func (l *LoggingPolicy) Execute(ctx context.Context, req *http.Request, next Executor) (*http.Response, error) {
	start := time.Now()
	resp, err := next(ctx, req)
	duration := time.Since(start)

	var event *zerolog.Event
	switch {
	case err != nil:
		event = l.logger.Error().Err(err)
	case resp != nil && (resp.StatusCode < 200 || resp.StatusCode > 299):
		event = l.logger.Warn().Int("status", resp.StatusCode)
	case resp != nil:
		event = l.logger.Debug().Int("status", resp.StatusCode)
	default:
		event = l.logger.Warn()
	}

	if route := RouteFromContext(ctx); route != "" {
		event = event.Str("route", route)
	}

	event.
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Dur("duration", duration).
		Msg("http request")

	return resp, err
}
