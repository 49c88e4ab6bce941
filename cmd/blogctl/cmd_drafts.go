package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Eccentric-Harry/blog-frontend/client/drafts"
)

func newDraftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage locally autosaved post drafts",
	}
	cmd.AddCommand(newListDraftsCmd())
	cmd.AddCommand(newShowDraftCmd())
	cmd.AddCommand(newSaveDraftCmd())
	cmd.AddCommand(newDiscardDraftCmd())
	cmd.AddCommand(newPublishDraftCmd())
	return cmd
}

func newListDraftsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List restorable drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				store := s.drafts()
				keys, err := store.Keys(ctx)
				if err != nil {
					return err
				}
				n := 0
				for _, k := range keys {
					d, ok, err := store.Load(ctx, k)
					if err != nil {
						return err
					}
					if !ok {
						continue
					}
					n++
					printf(cmd, "%s\t%s\t%s\n", k, d.SavedAt().Format("2006-01-02 15:04:05"), d.Title)
				}
				printf(cmd, "Total: %d\n", n)
				return nil
			})
		},
	}
}

func newShowDraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Print a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				d, ok, err := s.drafts().Load(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no restorable draft %q", args[0])
				}
				return printJSON(cmd, d)
			})
		},
	}
}

func newSaveDraftCmd() *cobra.Command {
	var form drafts.PostForm
	var contentFile, mode string
	var id int64

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save form fields as a draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != drafts.ModeCreate && mode != drafts.ModeEdit {
				return fmt.Errorf("invalid mode %q", mode)
			}
			if err := readContent(&form, contentFile); err != nil {
				return err
			}
			key := drafts.Key(mode, id)
			return withSession(cmd, func(ctx context.Context, s *session) error {
				d, err := s.drafts().Save(ctx, key, form.Draft())
				if err != nil {
					return err
				}
				log.Debug().Str("key", key).Int64("timestamp", d.Timestamp).Msg("draft saved")
				printf(cmd, "Draft saved: %s\n", key)
				return nil
			})
		},
	}

	postFormFlags(cmd, &form, &contentFile)
	cmd.Flags().StringVar(&mode, "mode", drafts.ModeCreate, "Form mode: create or edit")
	cmd.Flags().Int64Var(&id, "id", 0, "Post id when editing")
	return cmd
}

func newDiscardDraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discard <key>",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.drafts().Discard(ctx, args[0]); err != nil {
					return err
				}
				printf(cmd, "Draft discarded: %s\n", args[0])
				return nil
			})
		},
	}
}

func newPublishDraftCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "publish <key>",
		Short: "Validate a draft, publish it and discard it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			mode, id, ok := drafts.ParseKey(key)
			if !ok {
				return fmt.Errorf("invalid draft key %q", key)
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				store := s.drafts()
				d, ok, err := store.Load(ctx, key)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no restorable draft %q", key)
				}
				form := drafts.FromDraft(d)
				form.Category = category
				if err := form.Validate(); err != nil {
					return err
				}

				var postID int64
				if mode == drafts.ModeEdit && id > 0 {
					p, err := s.client.UpdatePost(ctx, id, form.UpdateRequest())
					if err != nil {
						return err
					}
					postID = p.ID
				} else {
					p, err := s.client.CreatePost(ctx, form.CreateRequest())
					if err != nil {
						return err
					}
					postID = p.ID
				}
				if err := store.Discard(ctx, key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("discard published draft")
				}
				printf(cmd, "Post published: %d\n", postID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category name")
	return cmd
}
