package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New writes JSON in production and human-readable console output elsewhere.
func New(env string) zerolog.Logger {
	if env == "production" {
		return zerolog.New(os.Stdout).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Str("service", "fleet-reports").
			Logger()
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(writer).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str("service", "fleet-reports").
		Logger()
}
