package fetchx

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/seb7887/gofw/fetchx/policy"
)

// DefaultContentType is the built-in default Content-Type header. It is sent
// on every request unless a header source sets it to nil or the body is multipart.
const DefaultContentType = "application/json"

// Client is the single entry point of the request pipeline.
// It is safe for concurrent use and immutable after creation: a different
// configuration requires a new Client.
type Client struct {
	// baseURL is prepended to all path templates
	baseURL string

	// headers are the configuration-level headers
	headers Headers

	// transport is the underlying HTTP executor
	transport Transport

	querySerializer QuerySerializer
	bodySerializer  BodySerializer
	parseAs         ParseAs
	redirect        RedirectMode

	// policies wrap every transport invocation
	policies []policy.Policy

	// executor is the chained executor for the default transport
	executor policy.Executor

	logger zerolog.Logger
}

// NewClient creates a new client with the provided options.
//
// Example:
//
//	client := fetchx.NewClient(
//	    fetchx.WithBaseURL("https://myapi.com/v1/"),
//	    fetchx.WithDefaultHeaders(fetchx.Headers{"Authorization": "Bearer token"}),
//	    fetchx.WithLogger(logger),
//	)
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		headers:         Headers{},
		querySerializer: DefaultQuerySerializer,
		bodySerializer:  DefaultBodySerializer,
		parseAs:         ParseJSON,
		redirect:        RedirectFollow,
		policies:        []policy.Policy{},
		logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}

	c.baseURL = strings.TrimSuffix(c.baseURL, "/")
	if c.transport == nil {
		c.transport = NewDefaultTransport()
	}
	if c.querySerializer == nil {
		c.querySerializer = DefaultQuerySerializer
	}
	if c.bodySerializer == nil {
		c.bodySerializer = DefaultBodySerializer
	}

	c.executor = policy.Chain(c.policies, c.transport.Do)

	return c
}

// BaseURL returns the base URL with its trailing slash removed.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do builds the request for method and pathTemplate, sends it through the
// transport and resolves the response.
//
// A non-2xx response is not an error: it is returned as a failed Result.
// Errors returned by the transport or by a serializer are returned unchanged.
func (c *Client) Do(ctx context.Context, method, pathTemplate string, opts ...RequestOption) (*Result, error) {
	cfg := applyOptions(opts)
	method = strings.ToUpper(method)

	querySerializer := c.querySerializer
	if cfg.querySerializer != nil {
		querySerializer = cfg.querySerializer
	}
	bodySerializer := c.bodySerializer
	if cfg.bodySerializer != nil {
		bodySerializer = cfg.bodySerializer
	}
	parseAs := c.parseAs
	if cfg.parseAs != nil {
		parseAs = *cfg.parseAs
	}
	redirect := c.redirect
	if cfg.redirect != "" {
		redirect = cfg.redirect
	}
	executor := c.executor
	if cfg.transport != nil {
		executor = policy.Chain(c.policies, cfg.transport.Do)
	}

	url, err := BuildURL(c.baseURL, pathTemplate, cfg.pathParams, cfg.query, querySerializer)
	if err != nil {
		return nil, err
	}

	defaults := Headers{"Content-Type": DefaultContentType}

	var payload *Payload
	if cfg.body != nil {
		p, err := bodySerializer(cfg.body)
		if err != nil {
			return nil, err
		}
		if p.IsMultipart() {
			delete(defaults, "Content-Type")
		}
		payload = &p
	}

	headers := MergeHeaders(defaults, c.headers, cfg.headers, cfg.headerParams)

	req, err := newHTTPRequest(ctx, method, url, headers, payload)
	if err != nil {
		return nil, &RequestError{Err: err, Cause: CauseInvalidRequest}
	}

	ctx = policy.ContextWithRoute(ctx, pathTemplate)
	ctx = ContextWithRedirect(ctx, redirect)

	resp, err := executor(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &RequestError{Err: ErrNilResponse, Request: req, Cause: CauseInvalidResponse}
	}
	if resp.Request == nil {
		resp.Request = req
	}

	return resolve(resp, parseAs, c.logger)
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, pathTemplate string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodGet, pathTemplate, opts...)
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, pathTemplate string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodPut, pathTemplate, opts...)
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, pathTemplate string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodPost, pathTemplate, opts...)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, pathTemplate string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, pathTemplate, opts...)
}

// Options sends an OPTIONS request.
func (c *Client) Options(ctx context.Context, pathTemplate string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodOptions, pathTemplate, opts...)
}

// Head sends a HEAD request.
func (c *Client) Head(ctx context.Context, pathTemplate string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodHead, pathTemplate, opts...)
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, pathTemplate string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodPatch, pathTemplate, opts...)
}

// Trace sends a TRACE request.
func (c *Client) Trace(ctx context.Context, pathTemplate string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodTrace, pathTemplate, opts...)
}

// newHTTPRequest creates the request handed to the transport. A payload with
// its own content type sets Content-Type when no header source did.
func newHTTPRequest(ctx context.Context, method, url string, headers http.Header, payload *Payload) (*http.Request, error) {
	var req *http.Request
	var err error
	if payload != nil && payload.Body != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, payload.Body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header = headers
	if payload != nil && payload.ContentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", payload.ContentType)
	}

	return req, nil
}
