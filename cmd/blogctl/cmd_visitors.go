package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Eccentric-Harry/blog-frontend/client"
)

func newVisitorsCmd() *cobra.Command {
	var track bool

	cmd := &cobra.Command{
		Use:   "visitors",
		Short: "Show the visitor count; --track records a visit first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if track {
					n, err := client.NewVisitorCounter(s.client).Count(ctx)
					if err != nil {
						return err
					}
					printf(cmd, "%d\n", n)
					return nil
				}
				res, err := s.client.VisitorCount(ctx)
				if err != nil {
					return err
				}
				printf(cmd, "%d\n", res.TotalVisitors)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&track, "track", false, "Record a visit before reading the count")
	return cmd
}
