package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "nested", "storage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	_, ok, err := kv.Get(ctx, "blog_access_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "blog_access_token", "tok1"))
	require.NoError(t, kv.Set(ctx, "blog_access_token", "tok2"))
	v, ok, err := kv.Get(ctx, "blog_access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok2", v)

	require.NoError(t, kv.Delete(ctx, "blog_access_token"))
	require.NoError(t, kv.Delete(ctx, "blog_access_token"))
	_, ok, err = kv.Get(ctx, "blog_access_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKV_Keys(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	for _, k := range []string{"draft-edit-3", "draft-create-new", "blog_access_token"} {
		require.NoError(t, kv.Set(ctx, k, "{}"))
	}
	keys, err := kv.Keys(ctx, "draft-")
	require.NoError(t, err)
	assert.Equal(t, []string{"draft-create-new", "draft-edit-3"}, keys)
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.db")
	kv, err := OpenKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k", "v"))
	require.NoError(t, kv.Close())

	kv, err = OpenKV(path)
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
