package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Eccentric-Harry/blog-frontend/client/credentials"
	"github.com/Eccentric-Harry/blog-frontend/client/internal/api"
)

// DefaultUserAgent is sent when the caller does not set a User-Agent.
const DefaultUserAgent = "blog-client-go"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the blog backend. It is safe for concurrent use; the only
// shared state is the token held by its credentials.Provider.
type Client struct {
	baseURL   string
	host      string
	http      *http.Client
	tokens    credentials.Provider
	log       zerolog.Logger
	userAgent string
	debug     bool

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL. Trailing slashes are stripped from
// baseURL. tokens supplies the bearer token for every request; pass
// credentials.NewMemory("") for an anonymous, in-memory session.
func New(baseURL string, tokens credentials.Provider, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q", baseURL)
	}
	if tokens == nil {
		return nil, fmt.Errorf("credentials provider cannot be nil")
	}

	c := &Client{
		baseURL:   baseURL,
		host:      u.Host,
		tokens:    tokens,
		log:       log.Logger,
		userAgent: DefaultUserAgent,
		http:      &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		if err := WithDebugLogging(true)(c); err != nil {
			return nil, err
		}
	}

	// Session cookies ride along with the bearer token.
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}

	c.wrapTransport()
	return c, nil
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string { return c.baseURL }

// wrapTransport installs the auth wrapper and metrics instrumentation on top
// of whatever transport the options configured.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = instrumentTransport(&authTransport{
		base:      base,
		host:      c.host,
		tokens:    c.tokens,
		userAgent: c.userAgent,
	})
}

// authTransport adds the bearer token, a request ID and the User-Agent to
// outgoing requests. Headers the caller already set are left alone. The token
// is only sent to host, so a redirect to another host never carries it.
type authTransport struct {
	base      http.RoundTripper
	host      string
	tokens    credentials.Provider
	userAgent string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())

	if cloned.Header.Get("Authorization") == "" && strings.EqualFold(cloned.URL.Host, t.host) {
		token, err := t.tokens.Token(req.Context())
		if err != nil {
			if req.Body != nil {
				_ = req.Body.Close()
			}
			return nil, fmt.Errorf("read access token: %w", err)
		}
		if token != "" {
			cloned.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if cloned.Header.Get("X-Request-ID") == "" {
		cloned.Header.Set("X-Request-ID", uuid.NewString())
	}
	if cloned.Header.Get("User-Agent") == "" && t.userAgent != "" {
		cloned.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(cloned)
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// Health
// --------------------------------------------------------------------

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	return api.GetHealth(ctx, c.http, c.baseURL)
}

// --------------------------------------------------------------------
// Auth operations
// --------------------------------------------------------------------

// Login authenticates with a username or email and stores the returned
// access token, so later calls are authenticated without re-supplying
// credentials.
func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResponse, error) {
	res, err := api.Login(ctx, c.http, c.baseURL, LoginRequest{UsernameOrEmail: usernameOrEmail, Password: password})
	if err != nil {
		return nil, err
	}
	if err := c.storeToken(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Register creates an account and stores the returned access token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	res, err := api.Register(ctx, c.http, c.baseURL, req)
	if err != nil {
		return nil, err
	}
	if err := c.storeToken(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// CurrentUser returns the user the stored token authenticates as.
func (c *Client) CurrentUser(ctx context.Context) (*AuthResponse, error) {
	return api.GetCurrentUser(ctx, c.http, c.baseURL)
}

// Logout forgets the stored access token. No request is sent.
func (c *Client) Logout(ctx context.Context) error {
	return c.tokens.ClearToken(ctx)
}

// HasToken reports whether an access token is currently stored.
func (c *Client) HasToken(ctx context.Context) (bool, error) {
	tok, err := c.tokens.Token(ctx)
	return tok != "", err
}

func (c *Client) storeToken(ctx context.Context, res *AuthResponse) error {
	if res.AccessToken == "" {
		return nil
	}
	if err := c.tokens.SetToken(ctx, res.AccessToken); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	return nil
}

// --------------------------------------------------------------------
// Post operations
// --------------------------------------------------------------------

// ListPosts returns a page of published posts matching the optional filters.
func (c *Client) ListPosts(ctx context.Context, params ListPostsParams) (*Page[PostSummary], error) {
	return api.ListPosts(ctx, c.http, c.baseURL, params)
}

// RecentPosts returns up to limit recently updated posts (5 when limit <= 0).
func (c *Client) RecentPosts(ctx context.Context, limit int) ([]PostSummary, error) {
	return api.ListRecentPosts(ctx, c.http, c.baseURL, limit)
}

// GetPost fetches a post by id.
func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	return api.GetPost(ctx, c.http, c.baseURL, id)
}

// GetPostBySlug fetches a post by slug.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	return api.GetPostBySlug(ctx, c.http, c.baseURL, slug)
}

// CreatePost creates a post.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	return api.CreatePost(ctx, c.http, c.baseURL, req)
}

// UpdatePost applies a partial update to a post.
func (c *Client) UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error) {
	return api.UpdatePost(ctx, c.http, c.baseURL, id, req)
}

// DeletePost deletes a post. Backend returns 204 No Content on success.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return api.DeletePost(ctx, c.http, c.baseURL, id)
}

// ListArchivedPosts returns a page of archived posts.
func (c *Client) ListArchivedPosts(ctx context.Context, page, size int) (*Page[PostSummary], error) {
	return api.ListArchivedPosts(ctx, c.http, c.baseURL, page, size)
}

// ArchivePost archives a post. Not idempotent at this layer: a repeated call
// returns whatever the server answers.
func (c *Client) ArchivePost(ctx context.Context, id int64) (*Post, error) {
	return api.ArchivePost(ctx, c.http, c.baseURL, id)
}

// UnarchivePost restores an archived post.
func (c *Client) UnarchivePost(ctx context.Context, id int64) (*Post, error) {
	return api.UnarchivePost(ctx, c.http, c.baseURL, id)
}

// --------------------------------------------------------------------
// Taxonomy
// --------------------------------------------------------------------

// AllCategories lists every category, including ones with no posts.
func (c *Client) AllCategories(ctx context.Context) ([]Category, error) {
	return api.ListAllCategories(ctx, c.http, c.baseURL)
}

// AllTags lists every tag, including ones with no posts.
func (c *Client) AllTags(ctx context.Context) ([]Tag, error) {
	return api.ListAllTags(ctx, c.http, c.baseURL)
}

// Categories lists categories that have published posts.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	return api.ListCategories(ctx, c.http, c.baseURL)
}

// Tags lists tags that have published posts.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	return api.ListTags(ctx, c.http, c.baseURL)
}

// TrendingTags lists up to limit trending tags (10 when limit <= 0).
func (c *Client) TrendingTags(ctx context.Context, limit int) ([]Tag, error) {
	return api.ListTrendingTags(ctx, c.http, c.baseURL, limit)
}

// --------------------------------------------------------------------
// Images
// --------------------------------------------------------------------

// ImageKitAuth fetches credentials for a direct upload to ImageKit.
func (c *Client) ImageKitAuth(ctx context.Context) (*ImageKitAuth, error) {
	return api.GetImageKitAuth(ctx, c.http, c.baseURL)
}

// UploadImage uploads a file through the backend proxy. Failures carry the
// plain-text response body (Kind == KindText), never an APIError envelope.
func (c *Client) UploadImage(ctx context.Context, req UploadImageRequest) (*ImageUpload, error) {
	return api.UploadImage(ctx, c.http, c.baseURL, req)
}

// --------------------------------------------------------------------
// Visitors
// --------------------------------------------------------------------

// TrackVisitor records a visit and returns the new total.
func (c *Client) TrackVisitor(ctx context.Context) (*VisitorCount, error) {
	return api.TrackVisitor(ctx, c.http, c.baseURL)
}

// VisitorCount reads the visitor total without recording a visit.
func (c *Client) VisitorCount(ctx context.Context) (*VisitorCount, error) {
	return api.GetVisitorCount(ctx, c.http, c.baseURL)
}
