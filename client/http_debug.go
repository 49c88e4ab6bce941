package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
)

// debugTransport dumps every request and response at debug level.
//
// Enable it with BLOG_CLIENT_DEBUG=true, DEBUG=true or WithDebugLogging(true).
// Response bodies are logged in full, so keep it out of production.
type debugTransport struct {
	base http.RoundTripper
	log  *zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	l := dt.log
	if reqDump, err := dumpRequest(req); err == nil {
		l.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		l.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		l.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// dumpRequest dumps req with the bearer token masked. DumpRequestOut drains
// and replaces the body of the request it is given, so the replacement is
// handed back to req.
func dumpRequest(req *http.Request) ([]byte, error) {
	if req.Header.Get("Authorization") == "" {
		return httputil.DumpRequestOut(req, true)
	}
	cp := *req
	cp.Header = req.Header.Clone()
	cp.Header.Set("Authorization", "Bearer [REDACTED]")
	dump, err := httputil.DumpRequestOut(&cp, true)
	req.Body = cp.Body
	return dump, err
}

// debugLoggingRequested reports whether BLOG_CLIENT_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("BLOG_CLIENT_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
