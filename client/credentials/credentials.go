// Package credentials holds the bearer token the client authenticates with.
// A Provider is constructed once per session and handed to client.New.
package credentials

import (
	"context"
	"sync"
)

// TokenKey is the storage key the access token is persisted under.
const TokenKey = "blog_access_token"

// Provider reads and writes the current access token. An empty token means
// the session is unauthenticated.
type Provider interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Memory keeps the token in process memory. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory returns a Memory provider seeded with token (may be empty).
func NewMemory(token string) *Memory { return &Memory{token: token} }

func (m *Memory) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *Memory) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *Memory) ClearToken(ctx context.Context) error { return m.SetToken(ctx, "") }
