package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Eccentric-Harry/blog-frontend/client"
)

func newLoginCmd() *cobra.Command {
	var user, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				start := time.Now()
				u, err := client.NewSession(s.client).Login(ctx, user, password)
				elapsed := time.Since(start)
				if err != nil {
					log.Error().Err(err).Str("user", user).Int("status", client.StatusCode(err)).Dur("elapsed", elapsed).Msg("login failed")
					return err
				}
				log.Debug().Str("user", user).Dur("elapsed", elapsed).Msg("login completed")
				if u == nil {
					printf(cmd, "Logged in\n")
					return nil
				}
				printf(cmd, "Logged in as %s (%s)\n", u.Username, u.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username or email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var req client.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				u, err := client.NewSession(s.client).Register(ctx, req)
				if err != nil {
					log.Error().Err(err).Str("username", req.Username).Msg("register failed")
					return err
				}
				if u != nil {
					printf(cmd, "Registered %s (%s)\n", u.Username, u.Role)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&req.DisplayName, "display-name", "", "Display name (optional)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := client.NewSession(s.client).Logout(ctx); err != nil {
					return err
				}
				printf(cmd, "Logged out\n")
				return nil
			})
		},
	}
}

func newWhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the stored token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				u, err := client.NewSession(s.client).Refresh(ctx)
				if err != nil {
					log.Warn().Err(err).Msg("stored token rejected; it has been cleared")
					return err
				}
				if u == nil {
					printf(cmd, "anonymous\n")
					return nil
				}
				return printJSON(cmd, u)
			})
		},
	}
}
