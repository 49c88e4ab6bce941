package types

import (
	"fmt"
	"strings"
)

// Validator is implemented by response types that carry invariants beyond
// what JSON decoding checks.
type Validator interface {
	Validate() error
}

// ValidateIDPresent checks a numeric identifier supplied by a caller.
func ValidateIDPresent(id int64, fieldName string) error {
	if id <= 0 {
		return fmt.Errorf("%s must be a positive integer", fieldName)
	}
	return nil
}

// ValidateRequired checks that a caller-supplied string is not blank.
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

func (u User) Validate() error {
	if u.ID <= 0 {
		return fmt.Errorf("user: id missing")
	}
	if u.Username == "" {
		return fmt.Errorf("user %d: username missing", u.ID)
	}
	return nil
}

func (t Tag) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("tag: id missing")
	}
	if t.Name == "" {
		return fmt.Errorf("tag %d: name missing", t.ID)
	}
	return nil
}

func (c Category) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("category: id missing")
	}
	if c.Name == "" {
		return fmt.Errorf("category %d: name missing", c.ID)
	}
	return nil
}

func (p Post) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("post: id missing")
	}
	if p.Title == "" {
		return fmt.Errorf("post %d: title missing", p.ID)
	}
	for _, t := range p.Tags {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("post %d: %w", p.ID, err)
		}
	}
	if p.Category != nil {
		if err := p.Category.Validate(); err != nil {
			return fmt.Errorf("post %d: %w", p.ID, err)
		}
	}
	return nil
}

func (p PostSummary) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("post summary: id missing")
	}
	if p.Title == "" {
		return fmt.Errorf("post summary %d: title missing", p.ID)
	}
	return nil
}

func (a AuthResponse) Validate() error {
	if a.User != nil {
		return a.User.Validate()
	}
	return nil
}

func (p Page[T]) Validate() error {
	if p.Size > 0 && len(p.Content) > p.Size {
		return fmt.Errorf("page: %d items exceed page size %d", len(p.Content), p.Size)
	}
	if p.Number < 0 || p.TotalPages < 0 || p.TotalElements < 0 {
		return fmt.Errorf("page: negative paging metadata")
	}
	// An out-of-range request legitimately yields an empty page, so the index
	// bound only applies when there is content.
	if len(p.Content) > 0 && p.Number >= p.TotalPages {
		return fmt.Errorf("page: index %d out of range for %d pages", p.Number, p.TotalPages)
	}
	for i, item := range p.Content {
		if v, ok := any(item).(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("page item %d: %w", i, err)
			}
		}
	}
	return nil
}

func (a ImageKitAuth) Validate() error {
	if a.Signature == "" || a.Token == "" {
		return fmt.Errorf("imagekit auth: signature and token are required")
	}
	return nil
}

func (u ImageUpload) Validate() error {
	if u.URL == "" {
		return fmt.Errorf("image upload: url missing")
	}
	return nil
}
