// Package logging configures the structured logger shared across the
// core's components.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w (the CLI passes its stderr
// writer, tests an in-memory buffer) at the given level ("debug", "info",
// "warn", "error"); an unrecognized level falls back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}

// Default returns a logger writing to stdout at info level, for
// callers that don't need to configure anything.
func Default() zerolog.Logger {
	return New(os.Stdout, "info")
}
