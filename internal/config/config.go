// Package config carries the few tunables the lexer, parser, and writer
// actually consult, constructed with defaults and threaded explicitly
// through constructors rather than read from globals at call time.
package config

import (
	"io"
	"os"
)

// Config holds the runtime knobs for the PGN lexer, parser, and writer.
type Config struct {
	// MaxLineLength is the writer's line-wrap budget, in bytes.
	MaxLineLength uint

	// AllowNestedComments controls whether a "{" appearing inside an
	// already-open comment starts a nested comment (some PGN variants
	// allow this) or is treated as ordinary comment text.
	AllowNestedComments bool

	// LogWriter receives informational diagnostics that are not part of
	// the returned warning list (startup messages, non-fatal notices
	// from cmd/pgnfmt). Defaults to os.Stderr.
	LogWriter io.Writer
}

// NewConfig returns a Config with the module's defaults: a 79-character
// line-wrap budget (spec §4.6), no nested comments, logging to stderr.
func NewConfig() *Config {
	return &Config{
		MaxLineLength:       79,
		AllowNestedComments: false,
		LogWriter:           os.Stderr,
	}
}
