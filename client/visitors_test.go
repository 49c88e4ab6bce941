package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eccentric-Harry/blog-frontend/client/credentials"
)

func TestVisitorCounter_TracksOnce(t *testing.T) {
	t.Parallel()
	srv, c, _ := newFakeClient(t)
	ctx := context.Background()
	v := NewVisitorCounter(c)

	n, err := v.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, v.Tracked())

	n, err = v.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(1), srv.Visitors())

	// A fresh counter is a new session.
	n, err = NewVisitorCounter(c).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestVisitorCounter_FallsBackToCount(t *testing.T) {
	t.Parallel()
	var tracks, counts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/visitors/track":
			tracks.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		case "/api/visitors/count":
			counts.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"totalVisitors":42}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL, credentials.NewMemory(""))
	require.NoError(t, err)
	v := NewVisitorCounter(c)

	n, err := v.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.True(t, v.Tracked())
	assert.Equal(t, int32(1), tracks.Load())
	assert.Equal(t, int32(1), counts.Load())

	// The failed attempt is not repeated.
	_, err = v.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), tracks.Load())
	assert.Equal(t, int32(2), counts.Load())
}

func TestVisitorCounter_ConcurrentCallsTrackOnce(t *testing.T) {
	t.Parallel()
	var tracks atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/visitors/track":
			tracks.Add(1)
			time.Sleep(50 * time.Millisecond)
			_, _ = w.Write([]byte(`{"totalVisitors":7}`))
		case "/api/visitors/count":
			_, _ = w.Write([]byte(`{"totalVisitors":7}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL, credentials.NewMemory(""))
	require.NoError(t, err)
	v := NewVisitorCounter(c)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := v.Count(context.Background()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Count unexpected: err=%v", err)
	}
	assert.Equal(t, int32(1), tracks.Load())
}

func TestVisitorCounter_BothFail(t *testing.T) {
	t.Parallel()
	c, err := New("http://example.com", credentials.NewMemory(""), WithHTTPClient(&http.Client{Transport: errRT{}}))
	require.NoError(t, err)

	_, err = NewVisitorCounter(c).Count(context.Background())
	require.Error(t, err)
}
