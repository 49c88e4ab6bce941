package blogtest

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// timeLayout matches the zone-less local timestamps the backend emits.
const timeLayout = "2006-01-02T15:04:05"

type user struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Role        string `json:"role"`

	password string
}

type tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount *int64 `json:"postCount,omitempty"`
}

type category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	PostCount   *int64 `json:"postCount,omitempty"`
}

type post struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Slug          string    `json:"slug"`
	Author        string    `json:"author,omitempty"`
	Tags          []tag     `json:"tags"`
	Category      *category `json:"category,omitempty"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	ReadTime      int       `json:"readTime"`
	Published     bool      `json:"published"`
	Archived      bool      `json:"archived"`

	created time.Time
	updated time.Time
}

type postSummary struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Slug          string   `json:"slug"`
	Author        string   `json:"author,omitempty"`
	Tags          []string `json:"tags"`
	CategoryName  string   `json:"categoryName,omitempty"`
	CategorySlug  string   `json:"categorySlug,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
	CoverImageURL string   `json:"coverImageUrl,omitempty"`
	ReadTime      int      `json:"readTime"`
	Archived      bool     `json:"archived"`
}

type page struct {
	Content       []postSummary `json:"content"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	Size          int           `json:"size"`
	Number        int           `json:"number"`
	First         bool          `json:"first"`
	Last          bool          `json:"last"`
}

// Upload is an image received by the upload endpoint.
type Upload struct {
	Name   string
	PostID string
	Size   int64
}

func (p *post) summary() postSummary {
	s := postSummary{
		ID:            p.ID,
		Title:         p.Title,
		Excerpt:       p.Excerpt,
		Slug:          p.Slug,
		Author:        p.Author,
		Tags:          make([]string, 0, len(p.Tags)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		CoverImageURL: p.CoverImageURL,
		ReadTime:      p.ReadTime,
		Archived:      p.Archived,
	}
	for _, t := range p.Tags {
		s.Tags = append(s.Tags, t.Name)
	}
	if p.Category != nil {
		s.CategoryName = p.Category.Name
		s.CategorySlug = p.Category.Slug
	}
	return s
}

func (p *post) visible() bool { return p.Published && !p.Archived }

func (p *post) hasTag(v string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t.Slug, v) || strings.EqualFold(t.Name, v) {
			return true
		}
	}
	return false
}

func (p *post) inCategory(v string) bool {
	return p.Category != nil && (strings.EqualFold(p.Category.Slug, v) || strings.EqualFold(p.Category.Name, v))
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// readTime estimates minutes at 200 words per minute, never below 1.
func readTime(content string) int {
	if n := len(strings.Fields(content)) / 200; n > 1 {
		return n
	}
	return 1
}

// paginate slices items into the zero-based page number of the given size.
func paginate(items []postSummary, number, size int) page {
	total := len(items)
	pages := (total + size - 1) / size
	start := number * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	content := items[start:end]
	if content == nil {
		content = []postSummary{}
	}
	return page{
		Content:       content,
		TotalElements: int64(total),
		TotalPages:    pages,
		Size:          size,
		Number:        number,
		First:         number == 0,
		Last:          number >= pages-1,
	}
}

func newestFirst(posts []*post, by func(*post) time.Time) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := by(posts[i]), by(posts[j])
		if ti.Equal(tj) {
			return posts[i].ID > posts[j].ID
		}
		return ti.After(tj)
	})
}
