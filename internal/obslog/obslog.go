// Package obslog wraps a single process-wide zerolog.Logger, the
// structured-logging counterpart to internal/config's TOML settings.
// Every package in this module that logs (reachability, petri) takes a
// zerolog.Logger parameter directly; obslog only owns how that logger
// is constructed and configured for a real run, mirroring
// drand-drand/common/log's New/DefaultLogger split (there for zap, here
// for zerolog).
package obslog

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// New builds a logger writing to output at the given level. When
// pretty is true, output is rendered through zerolog.ConsoleWriter
// (human-readable, for interactive runs); otherwise it is newline-
// delimited JSON, suited to log aggregation.
func New(output io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if output == nil {
		output = os.Stderr
	}
	w := output
	if pretty {
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

var (
	defaultOnce   sync.Once
	defaultLogger zerolog.Logger
)

// Default returns the process-wide logger, lazily built at Info level
// with pretty console output the first time it is requested. Call
// SetDefault before the first Default call to override this.
func Default() zerolog.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Stderr, zerolog.InfoLevel, true)
	})
	return defaultLogger
}

// SetDefault replaces the process-wide logger Default returns. It has
// no effect once Default has already been called, matching the
// sync.Once-guarded singleton drand-drand's DefaultLogger uses.
func SetDefault(l zerolog.Logger) {
	defaultOnce.Do(func() {
		defaultLogger = l
	})
}

// ParseLevel resolves a config-file level name ("debug", "info", "warn",
// "error") to a zerolog.Level, defaulting to zerolog.InfoLevel for an
// empty or unrecognized name rather than erroring: a typo in a tuning
// flag should not abort an analysis run.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
