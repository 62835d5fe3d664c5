package fetchx

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/seb7887/gofw/fetchx/idgen"
	"github.com/seb7887/gofw/fetchx/observability"
	"github.com/seb7887/gofw/fetchx/policy"
	"go.opentelemetry.io/otel/trace"
)

// ClientOption configures a Client at construction time.
type ClientOption interface {
	apply(*Client)
}

type clientOptionFunc func(*Client)

func (f clientOptionFunc) apply(c *Client) {
	f(c)
}

// WithBaseURL sets the URL prepended to every path template. One trailing
// slash is removed.
func WithBaseURL(baseURL string) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.baseURL = baseURL
	})
}

// WithDefaultHeaders sets the configuration-level headers. A nil value
// removes a built-in default header such as Content-Type.
func WithDefaultHeaders(headers Headers) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.headers = make(Headers, len(headers))
		for k, v := range headers {
			c.headers[k] = v
		}
	})
}

// WithTransport sets the transport used when a call does not override it.
func WithTransport(t Transport) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.transport = t
	})
}

// WithHTTPClient uses client through a DefaultTransport.
func WithHTTPClient(client *http.Client) ClientOption {
	return WithTransport(NewDefaultTransportWithClient(client))
}

// WithQuerySerializer sets the default query serializer.
func WithQuerySerializer(s QuerySerializer) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.querySerializer = s
	})
}

// WithBodySerializer sets the default body serializer.
func WithBodySerializer(s BodySerializer) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.bodySerializer = s
	})
}

// WithDefaultParseAs sets the parse mode used when a call does not select one.
func WithDefaultParseAs(p ParseAs) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.parseAs = p
	})
}

// WithRedirect sets the default redirect mode.
func WithRedirect(mode RedirectMode) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.redirect = mode
	})
}

// WithPolicies appends policies around the transport. Policies run in the
// order they are added, the first one outermost.
func WithPolicies(policies ...policy.Policy) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.policies = append(c.policies, policies...)
	})
}

// WithLogger sets the client logger and logs every transport invocation.
func WithLogger(logger zerolog.Logger) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.logger = logger
		c.policies = append(c.policies, policy.NewLoggingPolicy(logger))
	})
}

// WithMetrics records Prometheus metrics into registry (the default registry
// when nil).
func WithMetrics(registry prometheus.Registerer) ClientOption {
	return clientOptionFunc(func(c *Client) {
		collector := observability.NewMetricsCollector(registry)
		c.policies = append(c.policies, policy.NewMetricsPolicy(collector))
	})
}

// WithTracing creates an OpenTelemetry span per call (global provider when nil).
func WithTracing(provider trace.TracerProvider) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.policies = append(c.policies, policy.NewInstrumentationPolicy(provider))
	})
}

// WithRequestID stamps requests with a generated id header. See
// policy.NewRequestIDPolicy for the defaults.
func WithRequestID(header string, generate idgen.Generator) ClientOption {
	return clientOptionFunc(func(c *Client) {
		c.policies = append(c.policies, policy.NewRequestIDPolicy(header, generate))
	})
}
