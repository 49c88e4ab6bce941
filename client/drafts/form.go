package drafts

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Eccentric-Harry/blog-frontend/client"
)

// excerptLength is the number of characters kept when an excerpt is derived.
const excerptLength = 200

var (
	htmlTag  = regexp.MustCompile(`<[^>]*>`)
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// PostForm is the user's input for creating or editing a post.
type PostForm struct {
	Title         string `validate:"required,min=3,max=200"`
	Content       string `validate:"required,min=10"`
	Excerpt       string `validate:"max=500"`
	Tags          string
	Category      string
	CoverImageURL string `validate:"omitempty,url"`
}

// FromDraft fills a form from a restored draft.
func FromDraft(d Draft) PostForm {
	return PostForm{
		Title:         d.Title,
		Content:       d.Content,
		Excerpt:       d.Excerpt,
		Tags:          d.Tags,
		CoverImageURL: d.CoverImageURL,
	}
}

// Draft snapshots the form for autosave.
func (f PostForm) Draft() Draft {
	return Draft{
		Title:         f.Title,
		Content:       f.Content,
		Excerpt:       f.Excerpt,
		Tags:          f.Tags,
		CoverImageURL: f.CoverImageURL,
	}
}

// FieldError is one failed form rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failed rule of a form.
type ValidationError []FieldError

func (v ValidationError) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the form. Failures are returned as a ValidationError.
func (f PostForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "Title.required", "Title.min":
		return "Title must be at least 3 characters"
	case "Title.max":
		return "Title is too long"
	case "Content.required", "Content.min":
		return "Content must be at least 10 characters"
	case "Excerpt.max":
		return "Excerpt is too long"
	case "CoverImageURL.url":
		return "Invalid URL"
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// CreateRequest converts a validated form into a published post.
func (f PostForm) CreateRequest() client.CreatePostRequest {
	published := true
	return client.CreatePostRequest{
		Title:         f.Title,
		Content:       f.Content,
		Excerpt:       f.excerpt(),
		Tags:          SplitTags(f.Tags),
		CategoryName:  strings.TrimSpace(f.Category),
		CoverImageURL: strings.TrimSpace(f.CoverImageURL),
		Published:     &published,
	}
}

// UpdateRequest converts a validated form into a full update that also
// publishes the post. Empty optional fields are left unchanged.
func (f PostForm) UpdateRequest() client.UpdatePostRequest {
	published := true
	req := client.UpdatePostRequest{
		Title:     &f.Title,
		Content:   &f.Content,
		Tags:      SplitTags(f.Tags),
		Published: &published,
	}
	if ex := f.excerpt(); ex != "" {
		req.Excerpt = &ex
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		req.CategoryName = &c
	}
	if u := strings.TrimSpace(f.CoverImageURL); u != "" {
		req.CoverImageURL = &u
	}
	return req
}

func (f PostForm) excerpt() string {
	if f.Excerpt != "" {
		return f.Excerpt
	}
	return DeriveExcerpt(f.Content)
}

// DeriveExcerpt strips HTML tags from content and keeps the first 200
// characters, trimmed.
func DeriveExcerpt(content string) string {
	text := []rune(htmlTag.ReplaceAllString(content, ""))
	if len(text) > excerptLength {
		text = text[:excerptLength]
	}
	return strings.TrimSpace(string(text))
}

// SplitTags parses comma-separated tags, dropping blanks. It returns nil when
// no tag remains.
func SplitTags(csv string) []string {
	var tags []string
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
