package api

import (
	"context"
	"net/http"

	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

// Login exchanges credentials for an access token and the user profile.
func Login(ctx context.Context, hc HTTPClient, baseURL string, req types.LoginRequest) (*types.AuthResponse, error) {
	res, err := Do[types.AuthResponse](ctx, hc, baseURL, "login", Request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		JSON:   req,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account; the response has the same shape as Login.
func Register(ctx context.Context, hc HTTPClient, baseURL string, req types.RegisterRequest) (*types.AuthResponse, error) {
	res, err := Do[types.AuthResponse](ctx, hc, baseURL, "register", Request{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		JSON:   req,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCurrentUser returns the user the request authenticates as.
func GetCurrentUser(ctx context.Context, hc HTTPClient, baseURL string) (*types.AuthResponse, error) {
	res, err := Do[types.AuthResponse](ctx, hc, baseURL, "get current user", Request{Path: "/api/auth/me"})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
