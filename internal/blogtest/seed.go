package blogtest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostSeed describes a post inserted directly into the fake store.
type PostSeed struct {
	Title     string
	Content   string
	Excerpt   string
	Author    string
	Tags      []string
	Category  string
	Published bool
	Archived  bool
}

// AddUser registers an account and returns its id.
func (s *Server) AddUser(username, email, password, role string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, email, password, "", role).ID
}

// Token issues a bearer token for an existing user.
func (s *Server) Token(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		panic(fmt.Sprintf("blogtest: unknown user %q", username))
	}
	return s.issueTokenLocked(username)
}

// AddPost stores a post and returns its id.
func (s *Server) AddPost(seed PostSeed) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.newPostLocked(seed.Title, seed.Content, seed.Excerpt, seed.Author, seed.Tags, seed.Category, seed.Published)
	p.Archived = seed.Archived
	return p.ID
}

// AddTag registers a tag that no post uses yet.
func (s *Server) AddTag(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tagLocked(name)
}

// AddCategory registers a category that no post uses yet.
func (s *Server) AddCategory(name, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryLocked(name).Description = description
}

// Visitors returns the visitor counter.
func (s *Server) Visitors() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visitors
}

// Uploads returns the images received by the upload endpoint.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

// PostCount returns the number of stored posts, archived and drafts included.
func (s *Server) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *Server) addUserLocked(username, email, password, displayName, role string) *user {
	s.nextUserID++
	u := &user{
		ID:          s.nextUserID,
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		password:    password,
	}
	s.users[username] = u
	return u
}

func (s *Server) issueTokenLocked(username string) string {
	tok := "tok-" + uuid.NewString()
	s.tokens[tok] = username
	return tok
}

func (s *Server) findUserLocked(usernameOrEmail string) *user {
	if u, ok := s.users[usernameOrEmail]; ok {
		return u
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, usernameOrEmail) {
			return u
		}
	}
	return nil
}

func (s *Server) tagLocked(name string) *tag {
	slug := slugify(name)
	for _, t := range s.tags {
		if t.Slug == slug {
			return t
		}
	}
	s.nextTagID++
	t := &tag{ID: s.nextTagID, Name: strings.TrimSpace(name), Slug: slug}
	s.tags = append(s.tags, t)
	return t
}

func (s *Server) categoryLocked(name string) *category {
	slug := slugify(name)
	for _, c := range s.categories {
		if c.Slug == slug {
			return c
		}
	}
	s.nextCatID++
	c := &category{ID: s.nextCatID, Name: strings.TrimSpace(name), Slug: slug}
	s.categories = append(s.categories, c)
	return c
}

func (s *Server) newPostLocked(title, content, excerpt, author string, tags []string, categoryName string, published bool) *post {
	s.nextPostID++
	now := s.now().UTC()
	p := &post{
		ID:        s.nextPostID,
		Title:     title,
		Content:   content,
		Excerpt:   excerpt,
		Slug:      s.uniqueSlugLocked(slugify(title)),
		Author:    author,
		Published: published,
		created:   now,
		updated:   now,
	}
	s.setTagsLocked(p, tags)
	s.setCategoryLocked(p, categoryName)
	p.ReadTime = readTime(content)
	p.touch(now)
	p.CreatedAt = now.Format(timeLayout)
	s.posts = append(s.posts, p)
	return p
}

func (s *Server) uniqueSlugLocked(base string) string {
	if base == "" {
		base = "post"
	}
	slug := base
	for n := 2; s.postBySlugLocked(slug) != nil; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	return slug
}

func (s *Server) setTagsLocked(p *post, names []string) {
	p.Tags = []tag{}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		t := s.tagLocked(n)
		p.Tags = append(p.Tags, tag{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
}

func (s *Server) setCategoryLocked(p *post, name string) {
	if strings.TrimSpace(name) == "" {
		p.Category = nil
		return
	}
	c := s.categoryLocked(name)
	p.Category = &category{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
}

func (s *Server) postByIDLocked(id int64) *post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Server) postBySlugLocked(slug string) *post {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

func (p *post) touch(now time.Time) {
	p.updated = now
	p.UpdatedAt = now.Format(timeLayout)
}
