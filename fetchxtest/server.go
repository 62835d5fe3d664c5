package fetchxtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RecordedRequest is what the test server saw of one request.
type RecordedRequest struct {
	Method     string
	RequestURI string
	Header     http.Header
	Body       []byte
}

// TestServerConfig configures the behavior of a test HTTP server.
type TestServerConfig struct {
	// StatusCodes is a list of status codes to rotate through
	// If empty, defaults to [200]
	StatusCodes []int

	// Body is written with every response.
	Body string

	// ContentType is sent with every response when not empty.
	ContentType string

	// Handler is a custom handler function
	// If set, overrides all other configuration
	Handler http.HandlerFunc
}

// TestServer is a configurable HTTP test server that records requests.
type TestServer struct {
	*httptest.Server

	mu            sync.Mutex
	config        TestServerConfig
	requests      []RecordedRequest
	statusCodeIdx int
}

// NewTestServer creates a new test server with the given configuration.
func NewTestServer(config TestServerConfig) *TestServer {
	if len(config.StatusCodes) == 0 {
		config.StatusCodes = []int{http.StatusOK}
	}

	ts := &TestServer{
		config: config,
	}

	ts.Server = httptest.NewServer(http.HandlerFunc(ts.handleRequest))

	return ts
}

// handleRequest records the request and answers according to the configuration.
func (ts *TestServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	ts.mu.Lock()
	ts.requests = append(ts.requests, RecordedRequest{
		Method:     r.Method,
		RequestURI: r.RequestURI,
		Header:     r.Header.Clone(),
		Body:       body,
	})
	statusCode := ts.config.StatusCodes[ts.statusCodeIdx%len(ts.config.StatusCodes)]
	ts.statusCodeIdx++
	ts.mu.Unlock()

	if ts.config.Handler != nil {
		ts.config.Handler(w, r)
		return
	}

	if ts.config.ContentType != "" {
		w.Header().Set("Content-Type", ts.config.ContentType)
	}
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, ts.config.Body)
}

// RequestCount returns the total number of requests handled by this server.
func (ts *TestServer) RequestCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.requests)
}

// LastRequest returns the most recent request, or the zero value if none.
func (ts *TestServer) LastRequest() RecordedRequest {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if len(ts.requests) == 0 {
		return RecordedRequest{}
	}
	return ts.requests[len(ts.requests)-1]
}

// Reset clears the recorded requests.
func (ts *TestServer) Reset() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.requests = nil
	ts.statusCodeIdx = 0
}

// TestServerOption is a functional option for configuring a test server.
type TestServerOption func(*TestServerConfig)

// WithStatusCodes sets the status codes to rotate through.
func WithStatusCodes(codes ...int) TestServerOption {
	return func(c *TestServerConfig) {
		c.StatusCodes = codes
	}
}

// WithBody sets the response body and its content type.
func WithBody(contentType, body string) TestServerOption {
	return func(c *TestServerConfig) {
		c.ContentType = contentType
		c.Body = body
	}
}

// WithHandler sets a custom handler function.
func WithHandler(handler http.HandlerFunc) TestServerOption {
	return func(c *TestServerConfig) {
		c.Handler = handler
	}
}

// NewTestServerWithOptions creates a test server with functional options.
func NewTestServerWithOptions(opts ...TestServerOption) *TestServer {
	config := TestServerConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return NewTestServer(config)
}
