// Package config loads blogctl settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is prepended to every environment variable, e.g. BLOG_API_BASE_URL.
const Prefix = "BLOG"

// Config holds the configuration for blogctl.
// Environment variables are automatically parsed from the BLOG_ prefix.
type Config struct {
	// Backend
	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Client-side storage for the access token and drafts. Empty means
	// $HOME/.blogctl/storage.db.
	StoragePath string `envconfig:"STORAGE_PATH" default:""`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

// ResolveDefaults derives StoragePath and validates the remaining fields.
func (c *Config) ResolveDefaults() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.StoragePath == "" {
		// Without a home directory the store lands in the working directory.
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.StoragePath = filepath.Join(home, ".blogctl", "storage.db")
	}
	return nil
}

// Level returns the parsed log level; Debug forces debug.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// New creates a new Config by parsing environment variables.
// Example: BLOG_API_BASE_URL, BLOG_HTTP_TIMEOUT=10s
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unsupported LOG_LEVEL: %s", s)
	}
}
