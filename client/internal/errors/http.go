package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 1 << 20

// categorize maps HTTP status codes to error categories.
func categorize(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Recoverable
	}
}

// GenericMessage is the fallback used when the server gave no usable message.
func GenericMessage(statusCode int) string {
	return fmt.Sprintf("API request failed with status %d", statusCode)
}

// FromResponse builds a structured HTTPError from a failed response. A body
// that is not a JSON envelope degrades to the generic status message.
func FromResponse(resp *http.Response) *HTTPError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return FromBody(resp.StatusCode, raw)
}

// FromBody is FromResponse for an already-read body.
func FromBody(statusCode int, raw []byte) *HTTPError {
	he := &HTTPError{
		Kind:       KindStructured,
		StatusCode: statusCode,
		Message:    GenericMessage(statusCode),
		Body:       string(raw),
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return he
	}
	var env APIError
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return he
	}
	he.Envelope = &env
	if env.Message != "" {
		he.Message = env.Message
	}
	return he
}

// FromTextResponse builds a text HTTPError whose message is prefix followed
// by the raw response body.
func FromTextResponse(resp *http.Response, prefix string) *HTTPError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := string(raw)
	return &HTTPError{
		Kind:       KindText,
		StatusCode: resp.StatusCode,
		Message:    prefix + strings.TrimRight(text, "\r\n"),
		Body:       text,
	}
}

// NewNetworkError wraps a transport-level failure for the named operation.
// The original error stays reachable through errors.Is/As.
func NewNetworkError(operation string, err error) error {
	return fmt.Errorf("%s: %w", operation, err)
}
