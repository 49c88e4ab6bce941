package client

import "github.com/Eccentric-Harry/blog-frontend/client/internal/types"

// Public aliases so SDK users can depend only on the client package.

// Domain types
type (
	User        = types.User
	Post        = types.Post
	PostSummary = types.PostSummary
	Tag         = types.Tag
	Category    = types.Category
)

// Request types
type (
	LoginRequest       = types.LoginRequest
	RegisterRequest    = types.RegisterRequest
	ListPostsParams    = types.ListPostsParams
	CreatePostRequest  = types.CreatePostRequest
	UpdatePostRequest  = types.UpdatePostRequest
	UploadImageRequest = types.UploadImageRequest
)

// Response types
type (
	Health       = types.Health
	AuthResponse = types.AuthResponse
	ImageKitAuth = types.ImageKitAuth
	ImageUpload  = types.ImageUpload
	VisitorCount = types.VisitorCount
)

// Page is one slice of a paginated listing.
type Page[T any] = types.Page[T]

const (
	RoleUser  = types.RoleUser
	RoleAdmin = types.RoleAdmin
)
