package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/Eccentric-Harry/blog-frontend/client/internal/errors"
	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if r.URL.Path != "/api/auth/login" || req.UsernameOrEmail != "harry" || req.Password != "correct" {
			t.Errorf("unexpected login request %s %+v", r.URL.Path, req)
		}
		writeJSON(w, http.StatusOK, types.AuthResponse{AccessToken: "tok123", User: &types.User{ID: 1, Username: "harry", Role: "ADMIN"}})
	}))
	defer srv.Close()
	got, err := Login(context.Background(), srv.Client(), srv.URL, types.LoginRequest{UsernameOrEmail: "harry", Password: "correct"})
	if err != nil || got.AccessToken != "tok123" || !got.User.IsAdmin() {
		t.Fatalf("Login unexpected: got=%+v err=%v", got, err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status": 401, "error": "Unauthorized", "message": "Invalid credentials", "path": "/api/auth/login",
		})
	}))
	defer srv.Close()
	_, err := Login(context.Background(), srv.Client(), srv.URL, types.LoginRequest{UsernameOrEmail: "harry", Password: "wrong"})
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("expected Invalid credentials, got %v", err)
	}
	if !apierrors.IsUnauthorized(err) || !apierrors.IsIrrecoverable(err) {
		t.Fatalf("expected irrecoverable 401, got %v", err)
	}
}

func TestRegister_OmitsEmptyDisplayName(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["displayName"]; ok || body["email"] != "h@example.com" {
			t.Errorf("unexpected register body: %v", body)
		}
		writeJSON(w, http.StatusCreated, types.AuthResponse{AccessToken: "t", User: &types.User{ID: 2, Username: "h", Role: "USER"}})
	}))
	defer srv.Close()
	got, err := Register(context.Background(), srv.Client(), srv.URL, types.RegisterRequest{Username: "h", Email: "h@example.com", Password: "pw"})
	if err != nil || got.User.ID != 2 {
		t.Fatalf("Register unexpected: got=%+v err=%v", got, err)
	}
}

func TestGetCurrentUser_InvalidUserPayload(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"username": "nobody"}})
	}))
	defer srv.Close()
	if _, err := GetCurrentUser(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected decode error for user without id")
	}
}
