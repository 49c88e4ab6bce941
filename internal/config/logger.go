package config

import (
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// InitLogger configures the global logger for text-based output with no
// coloring on stderr, keeping stdout for command results.
func InitLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
}

// SetLogLevel sets the global log level.
func SetLogLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// NewLogger returns a JSON logger tagged with service that renders
// github.com/pkg/errors stacks. Call sites use .Stack() on error events.
func NewLogger(w io.Writer, service string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	return zerolog.New(w).With().
		Str("service", service).
		Timestamp().
		Logger()
}

// Init installs the console logger at the configured level and logs the
// loaded configuration.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(c.Level())

	log.Debug().
		Str("api_base_url", c.APIBaseURL).
		Str("storage_path", c.StoragePath).
		Dur("http_timeout", c.HTTPTimeout).
		Str("log_level", c.Level().String()).
		Msg("Configuration loaded")
}
