package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eccentric-Harry/blog-frontend/client/internal/types"
)

func TestTaxonomyEndpoints(t *testing.T) {
	t.Parallel()
	zero := int64(0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/posts/categories/all":
			writeJSON(w, http.StatusOK, []types.Category{{ID: 1, Name: "Go", Slug: "go"}, {ID: 2, Name: "Empty", Slug: "empty", PostCount: &zero}})
		case "/api/posts/tags/all":
			writeJSON(w, http.StatusOK, []types.Tag{{ID: 1, Name: "go", Slug: "go"}, {ID: 2, Name: "unused", Slug: "unused", PostCount: &zero}})
		case "/api/tags":
			writeJSON(w, http.StatusOK, []types.Tag{{ID: 1, Name: "go", Slug: "go"}})
		case "/api/categories":
			writeJSON(w, http.StatusOK, []types.Category{{ID: 1, Name: "Go", Slug: "go"}})
		case "/api/tags/trending":
			if r.URL.Query().Get("limit") != "10" {
				t.Errorf("default trending limit not applied: %s", r.URL.RawQuery)
			}
			writeJSON(w, http.StatusOK, []types.Tag{{ID: 1, Name: "go", Slug: "go"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	cats, err := ListAllCategories(ctx, srv.Client(), srv.URL)
	if err != nil || len(cats) != 2 || *cats[1].PostCount != 0 {
		t.Fatalf("ListAllCategories unexpected: got=%+v err=%v", cats, err)
	}
	tags, err := ListAllTags(ctx, srv.Client(), srv.URL)
	if err != nil || len(tags) != 2 {
		t.Fatalf("ListAllTags unexpected: got=%+v err=%v", tags, err)
	}
	if tags, err = ListTags(ctx, srv.Client(), srv.URL); err != nil || len(tags) != 1 {
		t.Fatalf("ListTags unexpected: got=%+v err=%v", tags, err)
	}
	if cats, err = ListCategories(ctx, srv.Client(), srv.URL); err != nil || len(cats) != 1 {
		t.Fatalf("ListCategories unexpected: got=%+v err=%v", cats, err)
	}
	if tags, err = ListTrendingTags(ctx, srv.Client(), srv.URL, 0); err != nil || len(tags) != 1 {
		t.Fatalf("ListTrendingTags unexpected: got=%+v err=%v", tags, err)
	}
}

func TestTaxonomy_NonOKStatuses(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	if _, err := ListTags(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for ListTags non-200")
	}
	if _, err := ListCategories(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for ListCategories non-200")
	}
}
