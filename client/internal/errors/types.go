// Package errors provides the error model of the client SDK: failed HTTP
// responses are reported as a tagged HTTPError whose Kind tells callers
// whether a structured server envelope was available.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCategory determines how callers may react to a failure.
type ErrorCategory int

const (
	// Recoverable failures may succeed when attempted again later.
	// Examples: 500 Internal Server Error, 429 Too Many Requests, network failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures will not succeed without changing the request.
	// Examples: 401 Unauthorized, 403 Forbidden, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Kind tags how the message of an HTTPError was obtained.
type Kind int

const (
	// KindStructured errors come from the JSON pipeline. Envelope is set when
	// the body parsed as an APIError.
	KindStructured Kind = iota

	// KindText errors come from endpoints whose failures are read as plain
	// text (multipart image upload).
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// APIError is the JSON envelope the backend returns for failed requests.
type APIError struct {
	Timestamp string   `json:"timestamp"`
	Status    int      `json:"status"`
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Path      string   `json:"path"`
	Details   []string `json:"details,omitempty"`
}

// HTTPError reports a response whose status is outside the success range.
type HTTPError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Envelope   *APIError // nil unless Kind == KindStructured and the body parsed
	Body       string    // raw response body, for debugging
}

// Error returns the human message unchanged so callers can show it as-is.
func (e *HTTPError) Error() string { return e.Message }

// Category classifies the failure by status code.
func (e *HTTPError) Category() ErrorCategory { return categorize(e.StatusCode) }

// DecodeError is returned when a successful response cannot be decoded into
// the expected type or fails validation.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// AsHTTPError extracts an *HTTPError from err's chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if stderrors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an HTTPError.
func StatusCode(err error) int {
	if he, ok := AsHTTPError(err); ok {
		return he.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// IsIrrecoverable reports whether err is an HTTP failure that should not be
// attempted again unchanged.
func IsIrrecoverable(err error) bool {
	if he, ok := AsHTTPError(err); ok {
		return he.Category() == Irrecoverable
	}
	return false
}
