package fetchx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// ParseAs selects how a successful response body is materialized.
type ParseAs int

const (
	// ParseJSON decodes the body into an any (map[string]any, []any, ...).
	ParseJSON ParseAs = iota
	// ParseText returns the body as a string.
	ParseText
	// ParseBlob returns the body as a Blob.
	ParseBlob
	// ParseArrayBuffer returns the raw body bytes.
	ParseArrayBuffer
	// ParseStream returns the live, unbuffered body reader. The caller must close it.
	ParseStream
)

// String returns the parse mode name.
func (p ParseAs) String() string {
	switch p {
	case ParseJSON:
		return "json"
	case ParseText:
		return "text"
	case ParseBlob:
		return "blob"
	case ParseArrayBuffer:
		return "arrayBuffer"
	case ParseStream:
		return "stream"
	default:
		return "unknown"
	}
}

// ParseParseAs maps a parse mode name (case-insensitive) to its value.
func ParseParseAs(name string) (ParseAs, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return ParseJSON, nil
	case "text":
		return ParseText, nil
	case "blob":
		return ParseBlob, nil
	case "arraybuffer", "array_buffer":
		return ParseArrayBuffer, nil
	case "stream":
		return ParseStream, nil
	default:
		return ParseJSON, fmt.Errorf("fetchx: unknown parse mode %q", name)
	}
}

// Blob is a binary body together with its media type.
type Blob struct {
	Type string
	Data []byte
}

// Size returns the number of bytes in the blob.
func (b Blob) Size() int { return len(b.Data) }

// Text returns the blob content as a string.
func (b Blob) Text() string { return string(b.Data) }

// materializer converts an owned body buffer into result data.
type materializer func(resp *http.Response, body []byte) (any, error)

var materializers = map[ParseAs]materializer{
	ParseJSON: func(_ *http.Response, body []byte) (any, error) {
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return v, nil
	},
	ParseText: func(_ *http.Response, body []byte) (any, error) {
		return string(body), nil
	},
	ParseBlob: func(resp *http.Response, body []byte) (any, error) {
		return Blob{Type: resp.Header.Get("Content-Type"), Data: body}, nil
	},
	ParseArrayBuffer: func(_ *http.Response, body []byte) (any, error) {
		return body, nil
	},
}

// Result is the outcome of a call: either success data or error data, never
// both. Response is always set.
type Result struct {
	// Response is the raw response. Unless the body was streamed, its Body has
	// already been buffered and can be read again by the caller.
	Response *http.Response

	data    any
	errBody any
	ok      bool
	empty   bool
}

// OK reports whether the result is the success variant.
func (r *Result) OK() bool { return r.ok }

// Data returns the success data, or nil for a failure.
func (r *Result) Data() any {
	if !r.ok {
		return nil
	}
	return r.data
}

// ErrorBody returns the error data, or nil for a success.
func (r *Result) ErrorBody() any {
	if r.ok {
		return nil
	}
	return r.errBody
}

// Empty reports whether the body was skipped because the response had no
// content. Data or ErrorBody is then an empty map.
func (r *Result) Empty() bool { return r.empty }

// StatusCode returns the response status code.
func (r *Result) StatusCode() int { return r.Response.StatusCode }

// Resolve turns a completed response into a Result.
//
// Responses with status 204 or a Content-Length of 0 are never read. Other
// successful responses are materialized according to parseAs. Error responses
// are decoded as JSON when possible and kept as text otherwise.
func Resolve(resp *http.Response, parseAs ParseAs) (*Result, error) {
	return resolve(resp, parseAs, zerolog.Nop())
}

func resolve(resp *http.Response, parseAs ParseAs, logger zerolog.Logger) (*Result, error) {
	if resp == nil {
		return nil, &RequestError{Err: ErrNilResponse, Cause: CauseInvalidResponse}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if resp.StatusCode == http.StatusNoContent || resp.Header.Get("Content-Length") == "0" {
		closeBody(resp)
		resp.Body = http.NoBody
		return &Result{Response: resp, data: map[string]any{}, errBody: map[string]any{}, ok: ok, empty: true}, nil
	}

	if ok && parseAs == ParseStream {
		return &Result{Response: resp, data: resp.Body, ok: true}, nil
	}

	body, err := bufferBody(resp)
	if err != nil {
		return nil, &RequestError{Err: err, Request: resp.Request, Response: resp, Cause: CauseReadBody}
	}

	if !ok {
		return &Result{Response: resp, errBody: decodeErrorBody(body, logger)}, nil
	}

	m, found := materializers[parseAs]
	if !found {
		logger.Debug().Str("parse_as", parseAs.String()).Msg("no materializer for parse mode, reading as text")
		m = materializers[ParseText]
	}

	data, err := m(resp, body)
	if err != nil {
		return nil, &RequestError{Err: err, Request: resp.Request, Response: resp, Cause: CauseDecodeResponse}
	}

	return &Result{Response: resp, data: data, ok: true}, nil
}

// decodeErrorBody decodes JSON error bodies and falls back to plain text.
func decodeErrorBody(body []byte, logger zerolog.Logger) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		logger.Debug().Err(err).Msg("error body is not JSON, keeping it as text")
		return string(body)
	}
	return v
}

// bufferBody reads the body once and leaves a re-readable copy in its place.
func bufferBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	original := resp.Body
	defer func() { _ = original.Close() }()

	body, err := io.ReadAll(original)
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func closeBody(resp *http.Response) {
	if resp.Body != nil {
		_ = resp.Body.Close()
	}
}
