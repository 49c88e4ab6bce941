package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	apierrors "github.com/Eccentric-Harry/blog-frontend/client/internal/errors"
	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

// HTTPClient interface for dependency injection.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BodyKind tells how a successful response body was negotiated.
type BodyKind int

const (
	// BodyEmpty is a 204 No Content response; nothing was read.
	BodyEmpty BodyKind = iota
	// BodyJSON is a body declared as application/json.
	BodyJSON
	// BodyText is any other body, kept as raw text.
	BodyText
)

// Body is a successful response body.
type Body struct {
	Kind        BodyKind
	ContentType string
	Raw         []byte
}

// Request describes one call through the shared pipeline.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// JSON is marshalled as the request body when non-nil.
	JSON any
	// Body is sent verbatim when JSON is nil.
	Body        io.Reader
	ContentType string
	Header      http.Header
}

// JoinURL concatenates the base URL (trailing slashes stripped) with path
// and the encoded query.
func JoinURL(baseURL, path string, query url.Values) string {
	target := strings.TrimRight(baseURL, "/") + path
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}
	return target
}

// Send runs the shared request pipeline: it resolves headers, issues the
// request and turns failure statuses into structured HTTP errors. Bearer
// authentication is added by the caller's transport.
func Send(ctx context.Context, hc HTTPClient, baseURL, op string, r Request) (*Body, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}

	var body io.Reader
	switch {
	case r.JSON != nil:
		payload, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/json")
		}
	case r.Body != nil:
		body = r.Body
		if r.ContentType != "" && header.Get("Content-Type") == "" {
			header.Set("Content-Type", r.ContentType)
		}
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, JoinURL(baseURL, r.Path, r.Query), body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	httpReq.Header = header

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !successful(resp.StatusCode) {
		return nil, apierrors.FromResponse(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return &Body{Kind: BodyEmpty}, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError(op, err)
	}
	ct := resp.Header.Get("Content-Type")
	kind := BodyText
	if isJSON(ct) {
		kind = BodyJSON
	}
	return &Body{Kind: kind, ContentType: ct, Raw: raw}, nil
}

// Decode converts a negotiated body into T. An empty body yields the zero
// value; a text body is only assignable to string; JSON bodies are validated
// after decoding.
func Decode[T any](op string, b *Body) (T, error) {
	var out T
	switch b.Kind {
	case BodyEmpty:
		return out, nil
	case BodyJSON:
		if err := json.Unmarshal(b.Raw, &out); err != nil {
			return out, &apierrors.DecodeError{Op: op, Err: err}
		}
		if err := validate(out); err != nil {
			return out, &apierrors.DecodeError{Op: op, Err: err}
		}
		return out, nil
	default:
		if s, ok := any(&out).(*string); ok {
			*s = string(b.Raw)
			return out, nil
		}
		return out, &apierrors.DecodeError{Op: op, Err: fmt.Errorf("expected JSON, got %q", b.ContentType)}
	}
}

// Do is Send followed by Decode.
func Do[T any](ctx context.Context, hc HTTPClient, baseURL, op string, r Request) (T, error) {
	b, err := Send(ctx, hc, baseURL, op, r)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](op, b)
}

// validate runs Validate on v, or on each element when v is a slice.
func validate(v any) error {
	if vv, ok := v.(types.Validator); ok {
		return vv.Validate()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	for i := 0; i < rv.Len(); i++ {
		if vv, ok := rv.Index(i).Interface().(types.Validator); ok {
			if err := vv.Validate(); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func successful(status int) bool { return status >= 200 && status < 300 }

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
