package api

import (
	"context"
	"strings"

	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

// GetHealth probes /health. A plain-text body is accepted as the status.
func GetHealth(ctx context.Context, hc HTTPClient, baseURL string) (*types.Health, error) {
	b, err := Send(ctx, hc, baseURL, "health", Request{Path: "/health"})
	if err != nil {
		return nil, err
	}
	if b.Kind == BodyText {
		return &types.Health{Status: strings.TrimSpace(string(b.Raw))}, nil
	}
	h, err := Decode[types.Health]("health", b)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
