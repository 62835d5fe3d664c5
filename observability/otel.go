package observability

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/seb7887/gofw/fetchx"
)

// OTELInstrumenter provides OpenTelemetry instrumentation for HTTP requests.
// It creates spans, injects trace context into headers, and records request metadata.
type OTELInstrumenter struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// NewOTELInstrumenter creates a new OTEL instrumenter with the given tracer provider.
// If provider is nil, uses the global tracer provider.
func NewOTELInstrumenter(provider trace.TracerProvider) *OTELInstrumenter {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	return &OTELInstrumenter{
		tracer:     provider.Tracer(instrumentationName),
		propagator: otel.GetTextMapPropagator(),
	}
}

// StartSpan creates a client span for req and injects the trace context into
// its headers. route, when not empty, is the path template of the call and
// becomes part of the span name.
func (o *OTELInstrumenter) StartSpan(ctx context.Context, req *http.Request, route string) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("HTTP %s", req.Method)
	if route != "" {
		spanName += " " + route
	}
	ctx, span := o.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
	)

	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL.String()),
		attribute.String("http.scheme", req.URL.Scheme),
		attribute.String("http.host", req.URL.Host),
		attribute.String("http.target", req.URL.Path),
	)

	if route != "" {
		span.SetAttributes(attribute.String("http.route", route))
	}
	if req.URL.RawQuery != "" {
		span.SetAttributes(attribute.String("http.query", req.URL.RawQuery))
	}

	o.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

// EndSpan completes the span with response information.
// Non-2xx responses are expected outcomes of a call but are still marked as
// span errors from 400 upwards. A response without content (204 or a zero
// Content-Length) is flagged with http.response.empty, since its body is never read.
func (o *OTELInstrumenter) EndSpan(span trace.Span, resp *http.Response, err error) {
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	if resp == nil {
		return
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		span.SetAttributes(attribute.String("http.response.content_type", ct))
	}
	if resp.ContentLength >= 0 {
		span.SetAttributes(attribute.Int64("http.response.content_length", resp.ContentLength))
	}
	if resp.StatusCode == http.StatusNoContent || resp.Header.Get("Content-Length") == "0" {
		span.SetAttributes(attribute.Bool("http.response.empty", true))
	}

	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
