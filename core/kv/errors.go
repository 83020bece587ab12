package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when a namespace or key cannot be placed in a URL path.
	ErrValidation = errors.New("kv: invalid request parameters")

	// ErrSerialization wraps failures while encoding a value for Put.
	ErrSerialization = errors.New("kv: failed to encode value")

	// ErrDeserialization wraps failures while decoding a successful response body.
	ErrDeserialization = errors.New("kv: failed to decode response")

	// ErrTransport wraps failures that prevented any HTTP response from arriving.
	ErrTransport = errors.New("kv: request failed")

	// ErrHTTP matches every *HTTPError with errors.Is.
	ErrHTTP = errors.New("kv: unexpected status")

	// ErrInvalidConfig is returned by NewClient for an unusable base URL.
	ErrInvalidConfig = errors.New("kv: invalid client configuration")
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Body is the raw response payload.
	Body []byte
	// Message is the server's "error" field when the body is a JSON error document.
	Message string
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status, Body: body}

	var doc struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &doc) == nil {
		e.Message = doc.Error
	}

	return e
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("kv: unexpected status %d: %s", e.StatusCode, e.Message)
	}
	if len(e.Body) > 0 && len(e.Body) <= 256 {
		return fmt.Sprintf("kv: unexpected status %d: %s", e.StatusCode, string(e.Body))
	}
	return fmt.Sprintf("kv: unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is reports whether target is ErrHTTP.
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an *HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is an HTTP 404 from the server.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
