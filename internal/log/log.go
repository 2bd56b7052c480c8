// Package log builds the zerolog loggers shared by the player, the fetch
// commands, and the organizer.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// New returns a logger writing to stderr at the given level. Output is
// human-readable on a terminal and JSON otherwise.
func New(level, version string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if nil != err {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", level, err)
	}
	return newLogger(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()), version).Level(lvl), nil
}

// NewDefault returns an info level logger, used before flags are parsed.
func NewDefault(version string) zerolog.Logger {
	return newLogger(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()), version).Level(zerolog.InfoLevel)
}

func newLogger(out io.Writer, pretty bool, version string) zerolog.Logger {
	if pretty {
		out = zerolog.ConsoleWriter{ //nolint:exhaustruct
			Out:        out,
			TimeFormat: time.TimeOnly,
		}
	}
	return zerolog.
		New(out).
		Hook(&stackHook{}).
		With().
		Timestamp().
		Str("version", version).
		Logger()
}
