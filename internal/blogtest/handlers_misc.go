package blogtest

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"
)

const maxUploadSize = 10 << 20

// tagCounts counts visible posts per tag id.
func (s *Server) tagCountsLocked() map[int64]int64 {
	counts := make(map[int64]int64)
	for _, p := range s.posts {
		if !p.visible() {
			continue
		}
		for _, t := range p.Tags {
			counts[t.ID]++
		}
	}
	return counts
}

func (s *Server) categoryCountsLocked() map[int64]int64 {
	counts := make(map[int64]int64)
	for _, p := range s.posts {
		if p.visible() && p.Category != nil {
			counts[p.Category.ID]++
		}
	}
	return counts
}

// tagsWithCountsLocked lists tags with counts; zero-count tags only when withEmpty.
func (s *Server) tagsWithCountsLocked(withEmpty bool) []tag {
	counts := s.tagCountsLocked()
	out := []tag{}
	for _, t := range s.tags {
		n := counts[t.ID]
		if n == 0 && !withEmpty {
			continue
		}
		out = append(out, tag{ID: t.ID, Name: t.Name, Slug: t.Slug, PostCount: &n})
	}
	return out
}

func (s *Server) categoriesWithCountsLocked(withEmpty bool) []category {
	counts := s.categoryCountsLocked()
	out := []category{}
	for _, c := range s.categories {
		n := counts[c.ID]
		if n == 0 && !withEmpty {
			continue
		}
		out = append(out, category{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description, PostCount: &n})
	}
	return out
}

func (s *Server) handleAllTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.tagsWithCountsLocked(true))
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.tagsWithCountsLocked(false))
}

func (s *Server) handleAllCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.categoriesWithCountsLocked(true))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.categoriesWithCountsLocked(false))
}

func (s *Server) handleTrendingTags(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	s.mu.Lock()
	tags := s.tagsWithCountsLocked(false)
	s.mu.Unlock()

	sort.SliceStable(tags, func(i, j int) bool { return *tags[i].PostCount > *tags[j].PostCount })
	if len(tags) > limit {
		tags = tags[:limit]
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleImageKitAuth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"signature": "fake-signature",
		"token":     "fake-token",
		"expire":    s.now().Add(30 * time.Minute).Unix(),
	})
}

// handleUpload answers failures with plain text, unlike the JSON endpoints.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if msg, _ := s.uploadFailure.Load().(string); msg != "" {
		writeText(w, http.StatusInternalServerError, msg)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeText(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	n, err := io.Copy(io.Discard, file)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Could not read file")
		return
	}
	if n > maxUploadSize {
		writeText(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	fileType := header.Header.Get("Content-Type")

	s.mu.Lock()
	s.uploads = append(s.uploads, Upload{Name: header.Filename, PostID: r.FormValue("postId"), Size: n})
	id := len(s.uploads)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"url":      fmt.Sprintf("%s/images/blog_post_images/%s", s.URL, header.Filename),
		"fileId":   fmt.Sprintf("file-%d", id),
		"name":     header.Filename,
		"size":     n,
		"fileType": fileType,
	})
}

func (s *Server) handleTrackVisitor(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.visitors++
	n := s.visitors
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int64{"totalVisitors": n})
}

func (s *Server) handleVisitorCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int64{"totalVisitors": s.Visitors()})
}
