package fetchx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// TypedResult is a Result decoded into caller-chosen types: T for the
// successful response shape and E for every error shape, including a
// "default" response.
type TypedResult[T, E any] struct {
	// Data is set only on success.
	Data *T
	// Error is set only on failure.
	Error *E
	// Response is the raw response.
	Response *http.Response
}

// OK reports whether the call succeeded.
func (r *TypedResult[T, E]) OK() bool { return r.Data != nil }

// Call runs a request through c and decodes the JSON body into T or E.
// Empty responses produce zero values. A failure body that is not JSON is
// stored as-is when E is string and left as the zero E otherwise.
//
// Example:
//
//	res, err := fetchx.Call[Post, APIError](ctx, client, http.MethodGet, "/blogposts/{post_id}",
//	    fetchx.WithPathParams(map[string]any{"post_id": "my-post"}),
//	)
func Call[T, E any](ctx context.Context, c *Client, method, pathTemplate string, opts ...RequestOption) (*TypedResult[T, E], error) {
	opts = append(opts[:len(opts):len(opts)], WithParseAs(ParseArrayBuffer))

	res, err := c.Do(ctx, method, pathTemplate, opts...)
	if err != nil {
		return nil, err
	}

	out := &TypedResult[T, E]{Response: res.Response}

	if res.OK() {
		out.Data = new(T)
		if raw, _ := res.Data().([]byte); !res.Empty() && len(raw) > 0 {
			if err := json.Unmarshal(raw, out.Data); err != nil {
				return nil, &RequestError{Err: err, Request: res.Response.Request, Response: res.Response, Cause: CauseDecodeResponse}
			}
		}
		return out, nil
	}

	out.Error = new(E)
	if res.Empty() {
		return out, nil
	}

	raw, err := io.ReadAll(res.Response.Body)
	if err != nil {
		return nil, &RequestError{Err: err, Request: res.Response.Request, Response: res.Response, Cause: CauseReadBody}
	}
	res.Response.Body = io.NopCloser(bytes.NewReader(raw))

	if err := json.Unmarshal(raw, out.Error); err != nil {
		var zero E
		*out.Error = zero
		if s, ok := any(out.Error).(*string); ok {
			*s = string(raw)
		}
	}

	return out, nil
}
