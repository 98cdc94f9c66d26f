// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide slog logger.
//
// The TUI owns the terminal, so it logs to a file; CLI commands log to
// stderr. Both go through Setup so level and format come from config.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects where and how log records are written.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json

	// File is opened in append mode when set; otherwise Writer is used,
	// falling back to stderr.
	File   string
	Writer io.Writer
}

// ParseLevel maps a config level name to a slog.Level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger without installing it. The returned closer releases
// the log file, if one was opened, and is never nil.
func New(opts Options) (*slog.Logger, func() error, error) {
	closer := func() error { return nil }

	w := opts.Writer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
			return nil, closer, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, closer, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = f.Close
	}
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var h slog.Handler
	if opts.Format == "json" {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(h).With("app", "twin"), closer, nil
}

// Setup builds a logger from opts and installs it as slog's default.
func Setup(opts Options) (func() error, error) {
	logger, closer, err := New(opts)
	if err != nil {
		return closer, err
	}
	slog.SetDefault(logger)
	return closer, nil
}

// Discard returns a logger that drops everything. Handy as a default for
// components constructed without one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
