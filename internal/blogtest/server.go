// Package blogtest runs an in-process fake of the blog backend. It implements
// every endpoint the client uses with in-memory state, so SDK and CLI tests
// can exercise real HTTP round trips.
package blogtest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
)

// Default seeded admin account.
const (
	AdminUsername = "admin"
	AdminEmail    = "admin@example.com"
	AdminPassword = "password"
)

// Server is a fake blog backend listening on a local port.
type Server struct {
	*httptest.Server

	healthy       atomic.Bool
	uploadFailure atomic.Value // string

	mu          sync.Mutex
	users       map[string]*user // by username
	tokens      map[string]string
	posts       []*post
	tags        []*tag
	categories  []*category
	nextUserID  int64
	nextPostID  int64
	nextTagID   int64
	nextCatID   int64
	visitors    int64
	uploads     []Upload
	now         func() time.Time
	lastRequest http.Header
}

// New starts a healthy fake backend with one admin account. Call Close when done.
func New() *Server {
	s := &Server{
		users:  make(map[string]*user),
		tokens: make(map[string]string),
		now:    time.Now,
	}
	s.healthy.Store(true)
	s.uploadFailure.Store("")
	s.AddUser(AdminUsername, AdminEmail, AdminPassword, "ADMIN")
	s.Server = httptest.NewServer(s.Router())
	return s
}

// Router builds the mux with every route of the backend.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recoverMiddleware)
	router.Use(s.captureHeaders)

	// Health
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Auth
	router.HandleFunc("/api/auth/login", s.handleLogin).Methods("POST")
	router.HandleFunc("/api/auth/register", s.handleRegister).Methods("POST")
	router.HandleFunc("/api/auth/me", s.handleMe).Methods("GET")

	// Posts (static paths before {id})
	router.HandleFunc("/api/posts", s.handleListPosts).Methods("GET")
	router.HandleFunc("/api/posts", s.requireAdmin(s.handleCreatePost)).Methods("POST")
	router.HandleFunc("/api/posts/recent", s.handleRecentPosts).Methods("GET")
	router.HandleFunc("/api/posts/archived", s.requireAdmin(s.handleArchivedPosts)).Methods("GET")
	router.HandleFunc("/api/posts/categories/all", s.handleAllCategories).Methods("GET")
	router.HandleFunc("/api/posts/tags/all", s.handleAllTags).Methods("GET")
	router.HandleFunc("/api/posts/slug/{slug}", s.handleGetPostBySlug).Methods("GET")
	router.HandleFunc("/api/posts/{id:[0-9]+}", s.handleGetPost).Methods("GET")
	router.HandleFunc("/api/posts/{id:[0-9]+}", s.requireAdmin(s.handleUpdatePost)).Methods("PUT")
	router.HandleFunc("/api/posts/{id:[0-9]+}", s.requireAdmin(s.handleDeletePost)).Methods("DELETE")
	router.HandleFunc("/api/posts/{id:[0-9]+}/archive", s.requireAdmin(s.handleArchive(true))).Methods("POST")
	router.HandleFunc("/api/posts/{id:[0-9]+}/unarchive", s.requireAdmin(s.handleArchive(false))).Methods("POST")

	// Taxonomy
	router.HandleFunc("/api/tags", s.handleTags).Methods("GET")
	router.HandleFunc("/api/tags/trending", s.handleTrendingTags).Methods("GET")
	router.HandleFunc("/api/categories", s.handleCategories).Methods("GET")

	// Images
	router.HandleFunc("/api/imagekit/auth", s.requireAuth(s.handleImageKitAuth)).Methods("GET")
	router.HandleFunc("/api/images/upload", s.requireAuth(s.handleUpload)).Methods("POST")

	// Visitors
	router.HandleFunc("/api/visitors/track", s.handleTrackVisitor).Methods("POST")
	router.HandleFunc("/api/visitors/count", s.handleVisitorCount).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "Resource not found")
	})
	return router
}

// SetHealthy switches the health endpoint between UP and DOWN (503).
func (s *Server) SetHealthy(ok bool) { s.healthy.Store(ok) }

// FailUploads makes the upload endpoint answer 500 with msg as a plain-text
// body. An empty msg restores normal behavior.
func (s *Server) FailUploads(msg string) { s.uploadFailure.Store(msg) }

// LastRequestHeader returns the headers of the most recent request.
func (s *Server) LastRequestHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequest.Clone()
}

func (s *Server) captureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.lastRequest = r.Header.Clone()
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}
