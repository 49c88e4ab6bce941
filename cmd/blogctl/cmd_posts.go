package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Eccentric-Harry/blog-frontend/client"
	"github.com/Eccentric-Harry/blog-frontend/client/drafts"
)

func newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List, read and manage posts",
	}
	cmd.AddCommand(newListPostsCmd())
	cmd.AddCommand(newRecentPostsCmd())
	cmd.AddCommand(newGetPostCmd())
	cmd.AddCommand(newCreatePostCmd())
	cmd.AddCommand(newUpdatePostCmd())
	cmd.AddCommand(newDeletePostCmd())
	cmd.AddCommand(newArchivePostCmd(true))
	cmd.AddCommand(newArchivePostCmd(false))
	cmd.AddCommand(newArchivedPostsCmd())
	return cmd
}

func printSummaries(cmd *cobra.Command, posts []client.PostSummary) {
	for _, p := range posts {
		printf(cmd, "%d\t%s\t%s\n", p.ID, p.Slug, p.Title)
	}
}

func printPage(cmd *cobra.Command, page *client.Page[client.PostSummary]) {
	printSummaries(cmd, page.Content)
	printf(cmd, "Page %d/%d, total: %d\n", page.Number+1, page.TotalPages, page.TotalElements)
}

func newListPostsCmd() *cobra.Command {
	var params client.ListPostsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				start := time.Now()
				page, err := s.client.ListPosts(ctx, params)
				if err != nil {
					log.Error().Err(err).Int("page", params.Page).Dur("elapsed", time.Since(start)).Msg("list posts failed")
					return err
				}
				log.Debug().Int("count", len(page.Content)).Dur("elapsed", time.Since(start)).Msg("list posts completed")
				printPage(cmd, page)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&params.Size, "size", 10, "Page size")
	cmd.Flags().StringVar(&params.Tag, "tag", "", "Filter by tag")
	cmd.Flags().StringVar(&params.Category, "category", "", "Filter by category")
	cmd.Flags().StringVarP(&params.Query, "query", "q", "", "Full-text search")
	return cmd
}

func newRecentPostsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently updated posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				posts, err := s.client.RecentPosts(ctx, limit)
				if err != nil {
					return err
				}
				printSummaries(cmd, posts)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of posts")
	return cmd
}

func newGetPostCmd() *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a post by id or --slug",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (slug == "") {
				return fmt.Errorf("pass either an id or --slug")
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				var (
					p   *client.Post
					err error
				)
				if slug != "" {
					p, err = s.client.GetPostBySlug(ctx, slug)
				} else {
					id, perr := parseID(args[0])
					if perr != nil {
						return perr
					}
					p, err = s.client.GetPost(ctx, id)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd, p)
			})
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "Post slug")
	return cmd
}

// postFormFlags binds the post form to flags shared by create and update.
func postFormFlags(cmd *cobra.Command, f *drafts.PostForm, contentFile *string) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Post title")
	cmd.Flags().StringVar(&f.Content, "content", "", "Post content (HTML)")
	cmd.Flags().StringVar(contentFile, "content-file", "", "Read post content from a file")
	cmd.Flags().StringVar(&f.Excerpt, "excerpt", "", "Excerpt; derived from content when empty")
	cmd.Flags().StringVar(&f.Tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&f.Category, "category", "", "Category name")
	cmd.Flags().StringVar(&f.CoverImageURL, "cover", "", "Cover image URL")
}

func readContent(f *drafts.PostForm, contentFile string) error {
	if contentFile == "" {
		return nil
	}
	b, err := os.ReadFile(contentFile)
	if err != nil {
		return err
	}
	f.Content = string(b)
	return nil
}

func newCreatePostCmd() *cobra.Command {
	var form drafts.PostForm
	var contentFile string
	var unpublished bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and publish a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := readContent(&form, contentFile); err != nil {
				return err
			}
			if err := form.Validate(); err != nil {
				return err
			}
			req := form.CreateRequest()
			if unpublished {
				published := false
				req.Published = &published
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				start := time.Now()
				p, err := s.client.CreatePost(ctx, req)
				if err != nil {
					log.Error().Err(err).Str("title", req.Title).Dur("elapsed", time.Since(start)).Msg("create post failed")
					return err
				}
				log.Debug().Int64("post_id", p.ID).Dur("elapsed", time.Since(start)).Msg("create post completed")
				printf(cmd, "Post created: %d - %s\n", p.ID, p.Slug)
				return nil
			})
		},
	}

	postFormFlags(cmd, &form, &contentFile)
	cmd.Flags().BoolVar(&unpublished, "unpublished", false, "Create without publishing")
	return cmd
}

func newUpdatePostCmd() *cobra.Command {
	var form drafts.PostForm
	var contentFile string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := readContent(&form, contentFile); err != nil {
				return err
			}
			req := partialUpdate(cmd, form, contentFile != "")
			return withSession(cmd, func(ctx context.Context, s *session) error {
				p, err := s.client.UpdatePost(ctx, id, req)
				if err != nil {
					return err
				}
				printf(cmd, "Post updated: %d - %s\n", p.ID, p.Title)
				return nil
			})
		},
	}

	postFormFlags(cmd, &form, &contentFile)
	return cmd
}

// partialUpdate sends only the flags the user set.
func partialUpdate(cmd *cobra.Command, f drafts.PostForm, contentFromFile bool) client.UpdatePostRequest {
	var req client.UpdatePostRequest
	changed := cmd.Flags().Changed
	if changed("title") {
		req.Title = &f.Title
	}
	if changed("content") || contentFromFile {
		req.Content = &f.Content
	}
	if changed("excerpt") {
		req.Excerpt = &f.Excerpt
	}
	if changed("tags") {
		req.Tags = drafts.SplitTags(f.Tags)
	}
	if changed("category") {
		c := strings.TrimSpace(f.Category)
		req.CategoryName = &c
	}
	if changed("cover") {
		u := strings.TrimSpace(f.CoverImageURL)
		req.CoverImageURL = &u
	}
	return req
}

func newDeletePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.client.DeletePost(ctx, id); err != nil {
					log.Error().Err(err).Int64("post_id", id).Msg("delete post failed")
					return err
				}
				printf(cmd, "Post deleted: %d\n", id)
				return nil
			})
		},
	}
}

func newArchivePostCmd(archive bool) *cobra.Command {
	use, short := "archive <id>", "Archive a post"
	if !archive {
		use, short = "unarchive <id>", "Restore an archived post"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				var p *client.Post
				if archive {
					p, err = s.client.ArchivePost(ctx, id)
				} else {
					p, err = s.client.UnarchivePost(ctx, id)
				}
				if err != nil {
					return err
				}
				printf(cmd, "Post %d archived: %t\n", p.ID, p.Archived)
				return nil
			})
		},
	}
}

func newArchivedPostsCmd() *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "archived",
		Short: "List archived posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				res, err := s.client.ListArchivedPosts(ctx, page, size)
				if err != nil {
					return err
				}
				printPage(cmd, res)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&size, "size", 10, "Page size")
	return cmd
}
