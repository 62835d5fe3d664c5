package fetchx

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Transport abstracts the actual HTTP request execution.
// This interface allows for easy mocking and testing of HTTP interactions.
type Transport interface {
	// Do executes an HTTP request and returns the response.
	// The context can be used for cancellation and timeout control.
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

// Do calls f(ctx, req).
func (f TransportFunc) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return f(ctx, req)
}

// RedirectMode controls how the default transport handles redirects.
type RedirectMode string

const (
	// RedirectFollow follows redirects (up to net/http's limit of 10).
	RedirectFollow RedirectMode = "follow"
	// RedirectManual returns the redirect response itself.
	RedirectManual RedirectMode = "manual"
	// RedirectError fails the call with ErrRedirect.
	RedirectError RedirectMode = "error"
)

// ParseRedirectMode maps a redirect mode name to its value. Empty means follow.
func ParseRedirectMode(name string) (RedirectMode, error) {
	switch mode := RedirectMode(strings.ToLower(name)); mode {
	case "":
		return RedirectFollow, nil
	case RedirectFollow, RedirectManual, RedirectError:
		return mode, nil
	default:
		return RedirectFollow, fmt.Errorf("fetchx: unknown redirect mode %q", name)
	}
}

type redirectKey struct{}

// ContextWithRedirect attaches a redirect mode to ctx. DefaultTransport reads
// it for every redirect it receives.
func ContextWithRedirect(ctx context.Context, mode RedirectMode) context.Context {
	return context.WithValue(ctx, redirectKey{}, mode)
}

// RedirectFromContext returns the redirect mode stored in ctx, RedirectFollow if none.
func RedirectFromContext(ctx context.Context) RedirectMode {
	if mode, ok := ctx.Value(redirectKey{}).(RedirectMode); ok && mode != "" {
		return mode
	}
	return RedirectFollow
}

// DefaultTransport wraps the standard library's http.Client.
type DefaultTransport struct {
	client *http.Client
}

// NewDefaultTransport creates a transport over a fresh http.Client that
// shares http.DefaultTransport and honours the redirect mode of each call.
func NewDefaultTransport() *DefaultTransport {
	return NewDefaultTransportWithClient(&http.Client{})
}

// NewDefaultTransportWithClient creates a transport using a custom http.Client.
// This allows full control over TLS configuration, proxies, timeouts, etc.
// The client's CheckRedirect is kept when set; otherwise the redirect mode of
// the call is applied.
func NewDefaultTransportWithClient(client *http.Client) *DefaultTransport {
	c := *client
	if c.CheckRedirect == nil {
		c.CheckRedirect = checkRedirect
	}
	return &DefaultTransport{client: &c}
}

// Do implements the Transport interface by delegating to the underlying http.Client.
func (t *DefaultTransport) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return t.client.Do(req)
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	switch RedirectFromContext(req.Context()) {
	case RedirectManual:
		return http.ErrUseLastResponse
	case RedirectError:
		return ErrRedirect
	}
	if len(via) >= 10 {
		return fmt.Errorf("fetchx: stopped after %d redirects", len(via))
	}
	return nil
}
