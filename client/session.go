package client

import (
	"context"
	"sync"
	"time"
)

// Session keeps the signed-in user alongside the Client's stored token.
// It is the SDK counterpart of an application's auth state: Refresh at
// start-up, Login/Register/Logout as the user acts.
type Session struct {
	c *Client

	mu   sync.RWMutex
	user *User
}

// NewSession returns an anonymous Session bound to c.
func NewSession(c *Client) *Session {
	return &Session{c: c}
}

// Login authenticates and caches the returned user. When the response omits
// the user it is fetched with Refresh.
func (s *Session) Login(ctx context.Context, usernameOrEmail, password string) (*User, error) {
	start := time.Now()
	res, err := s.c.Login(ctx, usernameOrEmail, password)
	if err != nil {
		s.c.log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("login failed")
		return nil, err
	}
	if res.User == nil {
		return s.Refresh(ctx)
	}
	s.setUser(res.User)
	s.c.log.Debug().Str("username", usernameOf(res.User)).Dur("elapsed", time.Since(start)).Msg("logged in")
	return res.User, nil
}

// Register creates an account, signs in and caches the returned user. A
// response without a user is completed with Refresh.
func (s *Session) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	res, err := s.c.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if res.User == nil {
		return s.Refresh(ctx)
	}
	s.setUser(res.User)
	s.c.log.Debug().Str("username", usernameOf(res.User)).Msg("registered")
	return res.User, nil
}

// Logout clears the stored token and the cached user.
func (s *Session) Logout(ctx context.Context) error {
	s.setUser(nil)
	return s.c.Logout(ctx)
}

// Refresh reloads the current user. Without a stored token the session is
// anonymous and nothing is sent. When the server rejects the token (or the
// request fails for any other reason) the token is cleared and the error is
// returned.
func (s *Session) Refresh(ctx context.Context) (*User, error) {
	ok, err := s.c.HasToken(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.setUser(nil)
		return nil, nil
	}

	res, err := s.c.CurrentUser(ctx)
	if err != nil {
		s.c.log.Warn().Err(err).Int("status", StatusCode(err)).Msg("session refresh failed; clearing token")
		s.setUser(nil)
		if clearErr := s.c.Logout(ctx); clearErr != nil {
			s.c.log.Error().Err(clearErr).Msg("clear token")
		}
		return nil, err
	}
	s.setUser(res.User)
	return res.User, nil
}

// User returns the cached user, or nil when anonymous.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a user is cached.
func (s *Session) IsAuthenticated() bool { return s.User() != nil }

// IsAdmin reports whether the cached user has the ADMIN role.
func (s *Session) IsAdmin() bool { return s.User().IsAdmin() }

func (s *Session) setUser(u *User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func usernameOf(u *User) string {
	if u == nil {
		return ""
	}
	return u.Username
}
