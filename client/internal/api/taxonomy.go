package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

const defaultTrendingLimit = 10

// ListAllCategories returns every category, including those without posts.
func ListAllCategories(ctx context.Context, hc HTTPClient, baseURL string) ([]types.Category, error) {
	return Do[[]types.Category](ctx, hc, baseURL, "list all categories", Request{Path: "/api/posts/categories/all"})
}

// ListAllTags returns every tag, including those without posts.
func ListAllTags(ctx context.Context, hc HTTPClient, baseURL string) ([]types.Tag, error) {
	return Do[[]types.Tag](ctx, hc, baseURL, "list all tags", Request{Path: "/api/posts/tags/all"})
}

// ListTags returns the tags that have published posts.
func ListTags(ctx context.Context, hc HTTPClient, baseURL string) ([]types.Tag, error) {
	return Do[[]types.Tag](ctx, hc, baseURL, "list tags", Request{Path: "/api/tags"})
}

// ListCategories returns the categories that have published posts.
func ListCategories(ctx context.Context, hc HTTPClient, baseURL string) ([]types.Category, error) {
	return Do[[]types.Category](ctx, hc, baseURL, "list categories", Request{Path: "/api/categories"})
}

// ListTrendingTags returns at most limit trending tags.
func ListTrendingTags(ctx context.Context, hc HTTPClient, baseURL string, limit int) ([]types.Tag, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return Do[[]types.Tag](ctx, hc, baseURL, "list trending tags", Request{Path: "/api/tags/trending", Query: q})
}
