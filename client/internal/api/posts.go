package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

const (
	defaultPageSize    = 10
	defaultRecentLimit = 5
)

func pageQuery(page, size int) url.Values {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

// ListPosts returns a page of published post summaries.
func ListPosts(ctx context.Context, hc HTTPClient, baseURL string, p types.ListPostsParams) (*types.Page[types.PostSummary], error) {
	q := pageQuery(p.Page, p.Size)
	if p.Tag != "" {
		q.Set("tag", p.Tag)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	page, err := Do[types.Page[types.PostSummary]](ctx, hc, baseURL, "list posts", Request{Path: "/api/posts", Query: q})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListRecentPosts returns the most recently updated posts, unpaged.
func ListRecentPosts(ctx context.Context, hc HTTPClient, baseURL string, limit int) ([]types.PostSummary, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return Do[[]types.PostSummary](ctx, hc, baseURL, "list recent posts", Request{Path: "/api/posts/recent", Query: q})
}

// GetPost fetches one post by numeric id.
func GetPost(ctx context.Context, hc HTTPClient, baseURL string, id int64) (*types.Post, error) {
	if err := types.ValidateIDPresent(id, "postId"); err != nil {
		return nil, err
	}
	return doPost(ctx, hc, baseURL, "get post", Request{Path: fmt.Sprintf("/api/posts/%d", id)})
}

// GetPostBySlug fetches one post by its URL slug.
func GetPostBySlug(ctx context.Context, hc HTTPClient, baseURL, slug string) (*types.Post, error) {
	if err := types.ValidateRequired(slug, "slug"); err != nil {
		return nil, err
	}
	return doPost(ctx, hc, baseURL, "get post by slug", Request{Path: "/api/posts/slug/" + url.PathEscape(slug)})
}

// CreatePost creates a post and returns it as stored.
func CreatePost(ctx context.Context, hc HTTPClient, baseURL string, req types.CreatePostRequest) (*types.Post, error) {
	return doPost(ctx, hc, baseURL, "create post", Request{Method: http.MethodPost, Path: "/api/posts", JSON: req})
}

// UpdatePost applies a partial update to a post.
func UpdatePost(ctx context.Context, hc HTTPClient, baseURL string, id int64, req types.UpdatePostRequest) (*types.Post, error) {
	if err := types.ValidateIDPresent(id, "postId"); err != nil {
		return nil, err
	}
	return doPost(ctx, hc, baseURL, "update post", Request{Method: http.MethodPut, Path: fmt.Sprintf("/api/posts/%d", id), JSON: req})
}

// DeletePost removes a post. The backend answers 204 No Content.
func DeletePost(ctx context.Context, hc HTTPClient, baseURL string, id int64) error {
	if err := types.ValidateIDPresent(id, "postId"); err != nil {
		return err
	}
	_, err := Send(ctx, hc, baseURL, "delete post", Request{Method: http.MethodDelete, Path: fmt.Sprintf("/api/posts/%d", id)})
	return err
}

// ListArchivedPosts returns a page of archived post summaries.
func ListArchivedPosts(ctx context.Context, hc HTTPClient, baseURL string, page, size int) (*types.Page[types.PostSummary], error) {
	res, err := Do[types.Page[types.PostSummary]](ctx, hc, baseURL, "list archived posts", Request{Path: "/api/posts/archived", Query: pageQuery(page, size)})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ArchivePost marks a post archived. Repeated calls are passed to the server as-is.
func ArchivePost(ctx context.Context, hc HTTPClient, baseURL string, id int64) (*types.Post, error) {
	if err := types.ValidateIDPresent(id, "postId"); err != nil {
		return nil, err
	}
	return doPost(ctx, hc, baseURL, "archive post", Request{Method: http.MethodPost, Path: fmt.Sprintf("/api/posts/%d/archive", id)})
}

// UnarchivePost restores an archived post.
func UnarchivePost(ctx context.Context, hc HTTPClient, baseURL string, id int64) (*types.Post, error) {
	if err := types.ValidateIDPresent(id, "postId"); err != nil {
		return nil, err
	}
	return doPost(ctx, hc, baseURL, "unarchive post", Request{Method: http.MethodPost, Path: fmt.Sprintf("/api/posts/%d/unarchive", id)})
}

func doPost(ctx context.Context, hc HTTPClient, baseURL, op string, r Request) (*types.Post, error) {
	p, err := Do[types.Post](ctx, hc, baseURL, op, r)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
