package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Eccentric-Harry/blog-frontend/client/credentials"
	"github.com/Eccentric-Harry/blog-frontend/internal/blogtest"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// errRT always fails at the transport layer.
type errRT struct{}

func (errRT) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

// failingProvider cannot read its token.
type failingProvider struct{ credentials.Memory }

func (*failingProvider) Token(context.Context) (string, error) {
	return "", errors.New("keychain locked")
}

// newFakeClient starts a fake backend and an anonymous client pointed at it.
func newFakeClient(t *testing.T, opts ...Option) (*blogtest.Server, *Client, *credentials.Memory) {
	t.Helper()
	srv := blogtest.New()
	t.Cleanup(srv.Close)
	tokens := credentials.NewMemory("")
	c, err := New(srv.URL+"/", tokens, opts...)
	if err != nil {
		t.Fatalf("New unexpected: err=%v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return srv, c, tokens
}

func loginAdmin(t *testing.T, c *Client) {
	t.Helper()
	if _, err := c.Login(context.Background(), blogtest.AdminUsername, blogtest.AdminPassword); err != nil {
		t.Fatalf("Login unexpected: err=%v", err)
	}
}
