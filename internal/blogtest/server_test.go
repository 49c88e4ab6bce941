package blogtest

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := make([]postSummary, 25)
	p := paginate(items, 2, 10)
	assert.Len(t, p.Content, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.Last)
	assert.False(t, p.First)

	empty := paginate(items, 7, 10)
	assert.Empty(t, empty.Content)
	assert.NotNil(t, empty.Content)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-go-world", slugify("  Hello, Go World! "))
	assert.Equal(t, "", slugify("!!!"))
}

func TestServer_ErrorEnvelope(t *testing.T) {
	s := New()
	defer s.Close()

	resp, err := http.Get(s.URL + "/api/posts/999")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "Post not found", env.Message)
	assert.Equal(t, "/api/posts/999", env.Path)
	assert.Equal(t, 404, env.Status)
}

func TestServer_AdminRoutesRequireToken(t *testing.T) {
	s := New()
	defer s.Close()

	resp, err := http.Post(s.URL+"/api/posts", "application/json", strings.NewReader(`{"title":"x","content":"y"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	s.AddUser("reader", "reader@example.com", "secret1", "USER")
	req, _ := http.NewRequest(http.MethodPost, s.URL+"/api/posts", strings.NewReader(`{"title":"x","content":"y"}`))
	req.Header.Set("Authorization", "Bearer "+s.Token("reader"))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, s.PostCount())
}

func TestServer_UploadFailureIsText(t *testing.T) {
	s := New()
	defer s.Close()
	s.FailUploads("storage offline")

	req, _ := http.NewRequest(http.MethodPost, s.URL+"/api/images/upload", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+s.Token(AdminUsername))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
}
