package fetchxtest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
)

// MockTransport is a mock implementation of fetchx.Transport for testing.
// It allows configuring response behavior and capturing request history.
type MockTransport struct {
	mu sync.Mutex

	// Response to return (if Err is nil)
	Response *http.Response

	// Err to return (takes precedence over Response)
	Err error

	// Func is a custom function to handle requests
	// If set, takes precedence over Response and Err
	Func func(ctx context.Context, req *http.Request) (*http.Response, error)

	// Requests captures all requests made to this transport
	Requests []*http.Request

	// Bodies captures the request bodies, in the same order as Requests
	Bodies [][]byte

	// CallCount tracks the number of times Do() was called
	CallCount int
}

// Do implements the fetchx.Transport interface. The request body is drained
// into Bodies.
func (m *MockTransport) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	m.mu.Lock()
	m.CallCount++
	m.Requests = append(m.Requests, req)
	m.Bodies = append(m.Bodies, body)
	fn, resp, err := m.Func, m.Response, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Reset clears the request history and call count.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = nil
	m.Bodies = nil
	m.CallCount = 0
}

// LastRequest returns the most recent request, or nil if no requests have been made.
func (m *MockTransport) LastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Requests) == 0 {
		return nil
	}

	return m.Requests[len(m.Requests)-1]
}

// LastBody returns the body of the most recent request.
func (m *MockTransport) LastBody() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Bodies) == 0 {
		return nil
	}

	return m.Bodies[len(m.Bodies)-1]
}

// NewResponse builds a response with the given status, headers and body.
// Content-Length is not set unless present in header.
func NewResponse(status int, header http.Header, body string) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode:    status,
		Status:        strconv.Itoa(status) + " " + http.StatusText(status),
		Header:        header,
		Body:          io.NopCloser(bytes.NewBufferString(body)),
		ContentLength: -1,
	}
}

// JSONResponse builds a response with a JSON-encoded body.
func JSONResponse(status int, v any) *http.Response {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return NewResponse(status, http.Header{"Content-Type": {"application/json"}}, string(data))
}

// TrackingBody is a response body that records whether it was read or closed.
type TrackingBody struct {
	reader *bytes.Reader

	mu     sync.Mutex
	read   bool
	closed bool
}

// NewTrackingBody creates a TrackingBody over content.
func NewTrackingBody(content string) *TrackingBody {
	return &TrackingBody{reader: bytes.NewReader([]byte(content))}
}

// Read implements io.Reader.
func (b *TrackingBody) Read(p []byte) (int, error) {
	b.mu.Lock()
	b.read = true
	b.mu.Unlock()
	return b.reader.Read(p)
}

// Close implements io.Closer.
func (b *TrackingBody) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// WasRead reports whether Read was called.
func (b *TrackingBody) WasRead() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read
}

// WasClosed reports whether Close was called.
func (b *TrackingBody) WasClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
