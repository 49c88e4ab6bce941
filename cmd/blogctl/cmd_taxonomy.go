package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Eccentric-Harry/blog-frontend/client"
)

func count(n *int64) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}

func newTagsCmd() *cobra.Command {
	var all, trending bool
	var limit int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags (published only, --all, or --trending)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && trending {
				return fmt.Errorf("--all and --trending are mutually exclusive")
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				var (
					tags []client.Tag
					err  error
				)
				switch {
				case all:
					tags, err = s.client.AllTags(ctx)
				case trending:
					tags, err = s.client.TrendingTags(ctx, limit)
				default:
					tags, err = s.client.Tags(ctx)
				}
				if err != nil {
					return err
				}
				for _, t := range tags {
					printf(cmd, "%s\t%s\t%s\n", t.Slug, t.Name, count(t.PostCount))
				}
				printf(cmd, "Total: %d\n", len(tags))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include tags without published posts")
	cmd.Flags().BoolVar(&trending, "trending", false, "Only trending tags")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum trending tags")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories (published only, or --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				var (
					cats []client.Category
					err  error
				)
				if all {
					cats, err = s.client.AllCategories(ctx)
				} else {
					cats, err = s.client.Categories(ctx)
				}
				if err != nil {
					return err
				}
				for _, c := range cats {
					printf(cmd, "%s\t%s\t%s\n", c.Slug, c.Name, count(c.PostCount))
				}
				printf(cmd, "Total: %d\n", len(cats))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include categories without published posts")
	return cmd
}
