// Copyright 2026 The Tense Authors
// SPDX-License-Identifier: MIT

// Package log configures structured logging for tense using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Options selects the verbosity and encoding of the default logger.
type Options struct {
	Verbose bool
	Quiet   bool
	JSON    bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written with slog.TextHandler, or slog.JSONHandler when
// opts.JSON is set.
func Setup(opts Options) {
	slog.SetDefault(slog.New(NewHandler(opts)))
}

// NewHandler builds the handler Setup installs.
func NewHandler(opts Options) slog.Handler {
	var level slog.Level
	switch {
	case opts.Quiet:
		level = slog.LevelWarn
	case opts.Verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.NewJSONHandler(w, hopts)
	}
	return slog.NewTextHandler(w, hopts)
}
