package api

import (
	"context"
	"net/http"

	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

// TrackVisitor records a visit and returns the updated counter.
func TrackVisitor(ctx context.Context, hc HTTPClient, baseURL string) (*types.VisitorCount, error) {
	res, err := Do[types.VisitorCount](ctx, hc, baseURL, "track visitor", Request{Method: http.MethodPost, Path: "/api/visitors/track"})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetVisitorCount reads the counter without recording a visit.
func GetVisitorCount(ctx context.Context, hc HTTPClient, baseURL string) (*types.VisitorCount, error) {
	res, err := Do[types.VisitorCount](ctx, hc, baseURL, "get visitor count", Request{Path: "/api/visitors/count"})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
