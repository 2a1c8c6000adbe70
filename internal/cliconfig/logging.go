package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the console logger the CLI hands to every component.
func NewLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
