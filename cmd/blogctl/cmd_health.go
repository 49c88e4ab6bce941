package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Eccentric-Harry/blog-frontend/client/health"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the backend liveness endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				start := time.Now()
				h, err := s.client.Health(ctx)
				if err != nil {
					log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("health check failed")
					return err
				}
				printf(cmd, "%s\n", h.Status)
				return nil
			})
		},
	}
}

func newWaitHealthyCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "wait-healthy",
		Short: "Block until the backend answers its health probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			elapsed, err := health.WaitHealthy(ctx, log.Logger, s.client, nil)
			if err != nil {
				log.Error().Err(err).Dur("elapsed", elapsed).Msg("backend did not become healthy")
				return err
			}
			printf(cmd, "healthy after %s\n", elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Give up after this long")
	return cmd
}

func newStatusCmd() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report online/offline; --watch keeps polling until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			m := health.NewMonitor(log.Logger, s.client, interval)
			if !watch {
				printf(cmd, "%s\n", m.Check(cmd.Context()))
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			m.Start(ctx)
			printf(cmd, "%s\n", m.Status())
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep polling and log status changes")
	cmd.Flags().DurationVar(&interval, "interval", health.DefaultInterval, "Polling interval")
	return cmd
}
