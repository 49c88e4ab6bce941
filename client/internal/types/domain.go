package types

import "github.com/go-openapi/strfmt"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Role values assigned to users by the backend.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is an account on the blog.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Role        string `json:"role"`
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Tag labels posts. PostCount is only reported by listing endpoints.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount *int64 `json:"postCount,omitempty"`
}

// Category groups posts.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	PostCount   *int64 `json:"postCount,omitempty"`
}

// Post is a full blog post including its rendered HTML content.
type Post struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Excerpt       string          `json:"excerpt,omitempty"`
	Slug          string          `json:"slug,omitempty"`
	Author        string          `json:"author,omitempty"`
	Tags          []Tag           `json:"tags,omitempty"`
	Category      *Category       `json:"category,omitempty"`
	CreatedAt     strfmt.DateTime `json:"createdAt"`
	UpdatedAt     strfmt.DateTime `json:"updatedAt"`
	CoverImageURL string          `json:"coverImageUrl,omitempty"`
	ReadTime      int             `json:"readTime,omitempty"`
	Published     bool            `json:"published"`
	Archived      bool            `json:"archived"`
}

// PostSummary is the list representation of a post.
type PostSummary struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Excerpt       string          `json:"excerpt"`
	Slug          string          `json:"slug,omitempty"`
	Author        string          `json:"author,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	CategoryName  string          `json:"categoryName,omitempty"`
	CategorySlug  string          `json:"categorySlug,omitempty"`
	CreatedAt     strfmt.DateTime `json:"createdAt"`
	UpdatedAt     strfmt.DateTime `json:"updatedAt"`
	CoverImageURL string          `json:"coverImageUrl,omitempty"`
	ReadTime      int             `json:"readTime,omitempty"`
	Archived      bool            `json:"archived"`
}
