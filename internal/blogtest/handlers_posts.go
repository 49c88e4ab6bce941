package blogtest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

type postInput struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	Author        *string  `json:"author"`
	Tags          []string `json:"tags"`
	CategoryName  *string  `json:"categoryName"`
	CoverImageURL *string  `json:"coverImageUrl"`
	Published     *bool    `json:"published"`
}

// pageParams reads page and size, defaulting to 0 and 10.
func pageParams(r *http.Request) (number, size int, ok bool) {
	number, size = 0, 10
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		number = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return 0, 0, false
		}
		size = n
	}
	return number, size, true
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	number, size, ok := pageParams(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid paging parameters")
		return
	}
	q := r.URL.Query()
	tagFilter, catFilter := q.Get("tag"), q.Get("category")
	search := strings.ToLower(q.Get("q"))

	s.mu.Lock()
	var matched []*post
	for _, p := range s.posts {
		if !p.visible() {
			continue
		}
		if tagFilter != "" && !p.hasTag(tagFilter) {
			continue
		}
		if catFilter != "" && !p.inCategory(catFilter) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title+" "+p.Content), search) {
			continue
		}
		matched = append(matched, p)
	}
	newestFirst(matched, func(p *post) time.Time { return p.created })
	items := summaries(matched)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, paginate(items, number, size))
}

func (s *Server) handleRecentPosts(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	s.mu.Lock()
	var visible []*post
	for _, p := range s.posts {
		if p.visible() {
			visible = append(visible, p)
		}
	}
	newestFirst(visible, func(p *post) time.Time { return p.updated })
	if len(visible) > limit {
		visible = visible[:limit]
	}
	items := summaries(visible)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleArchivedPosts(w http.ResponseWriter, r *http.Request) {
	number, size, ok := pageParams(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid paging parameters")
		return
	}
	s.mu.Lock()
	var archived []*post
	for _, p := range s.posts {
		if p.Archived {
			archived = append(archived, p)
		}
	}
	newestFirst(archived, func(p *post) time.Time { return p.updated })
	items := summaries(archived)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, paginate(items, number, size))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.postByIDLocked(pathID(r))
	if p == nil {
		writeError(w, r, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetPostBySlug(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.postBySlugLocked(mux.Vars(r)["slug"])
	if p == nil {
		writeError(w, r, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed request body")
		return
	}
	var details []string
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		details = append(details, "title: must not be blank")
	}
	if in.Content == nil || strings.TrimSpace(*in.Content) == "" {
		details = append(details, "content: must not be blank")
	}
	if len(details) > 0 {
		writeError(w, r, http.StatusBadRequest, "Validation failed", details...)
		return
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.newPostLocked(*in.Title, *in.Content, deref(in.Excerpt), deref(in.Author), in.Tags, deref(in.CategoryName), published)
	p.CoverImageURL = deref(in.CoverImageURL)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.postByIDLocked(pathID(r))
	if p == nil {
		writeError(w, r, http.StatusNotFound, "Post not found")
		return
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			writeError(w, r, http.StatusBadRequest, "Validation failed", "title: must not be blank")
			return
		}
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
		p.ReadTime = readTime(p.Content)
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	if in.Tags != nil {
		s.setTagsLocked(p, in.Tags)
	}
	if in.CategoryName != nil {
		s.setCategoryLocked(p, *in.CategoryName)
	}
	if in.CoverImageURL != nil {
		p.CoverImageURL = *in.CoverImageURL
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	p.touch(s.now().UTC())
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, r, http.StatusNotFound, "Post not found")
}

func (s *Server) handleArchive(archive bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.postByIDLocked(pathID(r))
		if p == nil {
			writeError(w, r, http.StatusNotFound, "Post not found")
			return
		}
		if p.Archived == archive {
			if archive {
				writeError(w, r, http.StatusBadRequest, "Post is already archived")
			} else {
				writeError(w, r, http.StatusBadRequest, "Post is not archived")
			}
			return
		}
		p.Archived = archive
		p.touch(s.now().UTC())
		writeJSON(w, http.StatusOK, p)
	}
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func summaries(posts []*post) []postSummary {
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.summary())
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
