package fetchx

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors that can be checked using errors.Is
var (
	// ErrNilResponse is returned when a transport returns neither a response nor an error.
	ErrNilResponse = errors.New("transport returned no response")

	// ErrRedirect is returned by the default transport when a redirect is
	// received and the redirect mode is RedirectError.
	ErrRedirect = errors.New("redirect not allowed")
)

// Error causes reported in RequestError.Cause.
const (
	CauseInvalidRequest  = "invalid_request"
	CauseInvalidResponse = "invalid_response"
	CauseReadBody        = "read_body"
	CauseDecodeResponse  = "decode_response"
)

// RequestError describes a failure of the pipeline itself: the request could
// not be built, or the response could not be read or decoded.
//
// Transport and serializer errors are never wrapped in a RequestError; they
// reach the caller unchanged. Non-2xx responses are not errors at all.
type RequestError struct {
	// Err is the underlying error
	Err error

	// Request is the HTTP request (nil if it could not be built)
	Request *http.Request

	// Response is the HTTP response if one was received
	Response *http.Response

	// Cause categorizes the error, see the Cause* constants.
	Cause string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Request != nil {
		return fmt.Sprintf("fetchx: %s %s failed: %s (cause: %s)",
			e.Request.Method,
			e.Request.URL.String(),
			e.Err.Error(),
			e.Cause,
		)
	}
	return fmt.Sprintf("fetchx: request failed: %s (cause: %s)", e.Err.Error(), e.Cause)
}

// Unwrap returns the underlying error, allowing errors.Is and errors.As to work.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code from the response if available.
// Returns 0 if no response was received.
func (e *RequestError) StatusCode() int {
	if e.Response != nil {
		return e.Response.StatusCode
	}
	return 0
}
