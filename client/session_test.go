package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eccentric-Harry/blog-frontend/client/credentials"
	"github.com/Eccentric-Harry/blog-frontend/internal/blogtest"
)

func TestSession_LoginLogout(t *testing.T) {
	t.Parallel()
	_, c, _ := newFakeClient(t)
	ctx := context.Background()
	s := NewSession(c)

	assert.False(t, s.IsAuthenticated())

	u, err := s.Login(ctx, blogtest.AdminUsername, blogtest.AdminPassword)
	require.NoError(t, err)
	assert.Equal(t, blogtest.AdminUsername, u.Username)
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	ok, err := c.HasToken(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_Register(t *testing.T) {
	t.Parallel()
	_, c, _ := newFakeClient(t)
	s := NewSession(c)

	u, err := s.Register(context.Background(), RegisterRequest{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
}

func TestSession_RefreshWithoutTokenIsAnonymous(t *testing.T) {
	t.Parallel()
	srv, c, _ := newFakeClient(t)
	s := NewSession(c)

	u, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Nil(t, srv.LastRequestHeader(), "no request expected without a token")
}

func TestSession_RefreshRestoresUser(t *testing.T) {
	t.Parallel()
	srv, c, tokens := newFakeClient(t)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, srv.Token(blogtest.AdminUsername)))

	s := NewSession(c)
	u, err := s.Refresh(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, s.IsAdmin())
}

func TestSession_RefreshClearsRejectedToken(t *testing.T) {
	t.Parallel()
	_, c, tokens := newFakeClient(t)
	ctx := context.Background()
	require.NoError(t, tokens.SetToken(ctx, "expired"))

	s := NewSession(c)
	u, err := s.Refresh(ctx)
	require.Error(t, err)
	assert.Nil(t, u)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))

	tok, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSession_LoginWithoutUserFetchesCurrentUser(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = w.Write([]byte(`{"accessToken":"tok-1","tokenType":"Bearer"}`))
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"status":401,"message":"Unauthorized"}`))
				return
			}
			_, _ = w.Write([]byte(`{"user":{"id":3,"username":"ann","email":"ann@example.com","role":"USER"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tokens := credentials.NewMemory("")
	c, err := New(srv.URL, tokens)
	require.NoError(t, err)
	s := NewSession(c)

	u, err := s.Login(context.Background(), "ann", "secret")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ann", u.Username)
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())

	tok, err := tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}
