package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes a zerolog.Logger on stderr based on the requested format
// and level. format can be "text" (human-friendly console) or "json"
// (structured). An unknown level falls back to info.
func Setup(format, level string) zerolog.Logger {
	return New(os.Stderr, format, level)
}

// New is Setup with an explicit writer.
func New(w io.Writer, format, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if format == "text" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    w != os.Stderr,
		}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
