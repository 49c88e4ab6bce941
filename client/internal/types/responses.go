package types

// ------------------------------
// Response Types
// ------------------------------

// Health is the liveness probe result.
type Health struct {
	Status string `json:"status"`
}

// AuthResponse is returned by login, register and the current-user endpoint.
type AuthResponse struct {
	AccessToken string `json:"accessToken,omitempty"`
	TokenType   string `json:"tokenType,omitempty"`
	ExpiresIn   int64  `json:"expiresIn,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// Page is one slice of a larger ordered result set. Number is zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// ImageKitAuth carries the short-lived credentials for a direct upload to ImageKit.
type ImageKitAuth struct {
	Signature string `json:"signature"`
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
}

// ImageUpload describes a stored image.
type ImageUpload struct {
	URL      string `json:"url"`
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	FileType string `json:"fileType"`
}

// VisitorCount is the site-wide visitor counter.
type VisitorCount struct {
	TotalVisitors int64 `json:"totalVisitors"`
}
