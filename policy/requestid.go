package policy

import (
	"context"
	"net/http"

	"github.com/seb7887/gofw/fetchx/idgen"
)

// DefaultRequestIDHeader is the header set by RequestIDPolicy when none is configured.
const DefaultRequestIDHeader = "X-Request-Id"

// RequestIDPolicy stamps every outgoing request with a unique identifier.
// A request that already carries the header is left unchanged.
type RequestIDPolicy struct {
	header   string
	generate idgen.Generator
}

// NewRequestIDPolicy creates a request id policy. Empty header defaults to
// X-Request-Id and a nil generator defaults to idgen.UUID.
func NewRequestIDPolicy(header string, generate idgen.Generator) *RequestIDPolicy {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	if generate == nil {
		generate = idgen.UUID
	}
	return &RequestIDPolicy{header: header, generate: generate}
}

// Execute implements the Policy interface.
func (r *RequestIDPolicy) Execute(ctx context.Context, req *http.Request, next Executor) (*http.Response, error) {
	if req.Header.Get(r.header) == "" {
		req.Header.Set(r.header, r.generate())
	}
	return next(ctx, req)
}
