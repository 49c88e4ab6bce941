// Command blogctl is an operator CLI for the blog backend.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Eccentric-Harry/blog-frontend/client"
	"github.com/Eccentric-Harry/blog-frontend/client/credentials"
	"github.com/Eccentric-Harry/blog-frontend/client/drafts"
	"github.com/Eccentric-Harry/blog-frontend/internal/config"
	"github.com/Eccentric-Harry/blog-frontend/internal/storage/sqlite"
)

const version = "0.1.0"

// requestTimeout bounds a single command's backend calls.
const requestTimeout = 15 * time.Second

var (
	serviceURL  string
	storagePath string
	httpTimeout time.Duration
	debug       bool
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	cfg, cfgErr := config.New()
	if cfgErr != nil {
		cfg = &config.Config{APIBaseURL: "http://localhost:8080", HTTPTimeout: 30 * time.Second}
	}

	rootCmd := &cobra.Command{
		Use:           "blogctl",
		Short:         "blogctl talks to the blog backend: posts, taxonomy, images, drafts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if debug {
				cfg.Debug = true
			}
			cfg.Init()
			log.Debug().Msg("debug logging enabled")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", cfg.APIBaseURL, "Base URL of the blog backend")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", cfg.StoragePath, "Path of the local storage database (token, drafts)")
	rootCmd.PersistentFlags().DurationVar(&httpTimeout, "http-timeout", cfg.HTTPTimeout, "HTTP client timeout")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", cfg.Debug, "Enable verbose debug output, including HTTP dumps")

	// Sub-commands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newWaitHealthyCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoAmICmd())
	rootCmd.AddCommand(newPostsCmd())
	rootCmd.AddCommand(newTagsCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newImageKitAuthCmd())
	rootCmd.AddCommand(newUploadImageCmd())
	rootCmd.AddCommand(newVisitorsCmd())
	rootCmd.AddCommand(newDraftsCmd())

	return rootCmd
}

// session bundles what a command needs: local storage and a client that
// authenticates with the stored token.
type session struct {
	kv     *sqlite.KV
	client *client.Client
}

func openSession() (*session, error) {
	kv, err := sqlite.OpenKV(storagePath)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", storagePath, err)
	}
	c, err := client.New(serviceURL, credentials.NewStore(kv),
		client.WithHTTPTimeout(httpTimeout),
		client.WithLogger(log.Logger),
		client.WithUserAgent("blogctl/"+version),
		client.WithDebugLogging(debug),
	)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	log.Debug().Str("service_url", c.BaseURL()).Str("storage", storagePath).Msg("session opened")
	return &session{kv: kv, client: c}, nil
}

func (s *session) drafts() *drafts.Store { return drafts.NewStore(s.kv) }

func (s *session) Close() {
	_ = s.client.Close()
	_ = s.kv.Close()
}

// withSession opens a session and a request-scoped context for fn.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()
	return fn(ctx, s)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
