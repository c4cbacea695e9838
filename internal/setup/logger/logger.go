package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return lvl
}

// New returns a JSON logger writing to stdout.
func New(level string) zerolog.Logger {
	return zerolog.New(os.Stdout).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Console returns a human-readable logger for the entrypoints.
func Console(level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}
