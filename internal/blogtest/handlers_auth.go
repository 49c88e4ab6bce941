package blogtest

import (
	"encoding/json"
	"net/http"
	"strings"
)

type authResponse struct {
	AccessToken string `json:"accessToken,omitempty"`
	TokenType   string `json:"tokenType,omitempty"`
	ExpiresIn   int64  `json:"expiresIn,omitempty"`
	User        *user  `json:"user"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.healthy.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UsernameOrEmail string `json:"usernameOrEmail"`
		Password        string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUserLocked(req.UsernameOrEmail)
	if u == nil || u.password != req.Password {
		writeError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		AccessToken: s.issueTokenLocked(u.Username),
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		User:        u,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed request body")
		return
	}
	var details []string
	if strings.TrimSpace(req.Username) == "" {
		details = append(details, "username: must not be blank")
	}
	if !strings.Contains(req.Email, "@") {
		details = append(details, "email: must be a well-formed email address")
	}
	if len(req.Password) < 6 {
		details = append(details, "password: size must be at least 6")
	}
	if len(details) > 0 {
		writeError(w, r, http.StatusBadRequest, "Validation failed", details...)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.users[req.Username]; taken {
		writeError(w, r, http.StatusConflict, "Username is already taken")
		return
	}
	if s.findUserLocked(req.Email) != nil {
		writeError(w, r, http.StatusConflict, "Email is already in use")
		return
	}
	u := s.addUserLocked(req.Username, req.Email, req.Password, req.DisplayName, "USER")
	writeJSON(w, http.StatusCreated, authResponse{
		AccessToken: s.issueTokenLocked(u.Username),
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		User:        u,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u := s.authenticated(r)
	if u == nil {
		writeError(w, r, http.StatusUnauthorized, "Full authentication is required to access this resource")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: u})
}

// authenticated resolves the bearer token of r, or nil.
func (s *Server) authenticated(r *http.Request) *user {
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || tok == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.tokens[tok]
	if !ok {
		return nil
	}
	return s.users[name]
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authenticated(r) == nil {
			writeError(w, r, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		next(w, r)
	}
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := s.authenticated(r)
		if u == nil {
			writeError(w, r, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		if u.Role != "ADMIN" {
			writeError(w, r, http.StatusForbidden, "Access denied")
			return
		}
		next(w, r)
	}
}
