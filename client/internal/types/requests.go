package types

import "io"

// ------------------------------
// Request Types
// ------------------------------

// LoginRequest holds the credentials for /api/auth/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// RegisterRequest holds parameters for a new account.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// ListPostsParams filters the published post listing. Zero values fall back
// to page 0 and size 10; empty filters are omitted.
type ListPostsParams struct {
	Page     int
	Size     int
	Tag      string
	Category string
	Query    string
}

// CreatePostRequest holds parameters for a new post.
type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Author        string   `json:"author,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	CategoryName  string   `json:"categoryName,omitempty"`
	CoverImageURL string   `json:"coverImageUrl,omitempty"`
	Published     *bool    `json:"published,omitempty"`
}

// UpdatePostRequest is a partial update; nil fields are left unchanged by the server.
type UpdatePostRequest struct {
	Title         *string  `json:"title,omitempty"`
	Content       *string  `json:"content,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	Author        *string  `json:"author,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	CategoryName  *string  `json:"categoryName,omitempty"`
	CoverImageURL *string  `json:"coverImageUrl,omitempty"`
	Published     *bool    `json:"published,omitempty"`
}

// UploadImageRequest is a file sent to the backend image proxy as multipart
// form data. PostID is attached when positive.
type UploadImageRequest struct {
	FileName    string
	ContentType string
	Data        io.Reader
	PostID      int64
}
