package internal

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the service logger: human-readable console output in dev,
// JSON in prod.
func NewLogger(w io.Writer, env string, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	switch env {
	case "prod":
		logger = zerolog.New(w)
	default:
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	return logger.Level(lvl).With().Timestamp().Logger()
}
