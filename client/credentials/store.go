package credentials

import "context"

// KV is the persistent key/value storage a Store writes through to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store persists the token under TokenKey so it survives process restarts.
// Every read goes to storage; there is no in-process cache.
type Store struct {
	kv KV
}

// NewStore returns a Provider backed by kv.
func NewStore(kv KV) *Store { return &Store{kv: kv} }

func (s *Store) Token(ctx context.Context) (string, error) {
	v, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}

// SetToken stores token; an empty token clears the stored value.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}
	return s.kv.Set(ctx, TokenKey, token)
}

func (s *Store) ClearToken(ctx context.Context) error { return s.kv.Delete(ctx, TokenKey) }
