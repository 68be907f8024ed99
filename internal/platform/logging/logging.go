// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the process-wide [*slog.Logger].
//
// Output is always JSON on stdout. When a log file is configured the same
// records are also written to a size-rotated file through lumberjack.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely records are written.
type Options struct {
	App        string
	Debug      bool
	File       string
	MaxSizeMB  int
	MaxBackups int

	// Stdout overrides os.Stdout, mainly for tests.
	Stdout io.Writer
}

// New returns a JSON logger tagged with the app name and a closer for the file sink.
//
// The closer is a no-op when no file sink is configured.
func New(options Options) (*slog.Logger, func() error) {
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	var (
		writer = stdout
		closer = func() error { return nil }
	)

	if options.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   options.File,
			MaxSize:    options.MaxSizeMB,
			MaxBackups: options.MaxBackups,
			Compress:   true,
			LocalTime:  true,
		}
		writer = io.MultiWriter(stdout, rotating)
		closer = rotating.Close
	}

	level := slog.LevelInfo
	if options.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}))
	if options.App != "" {
		logger = logger.With(slog.String("app", options.App))
	}

	return logger, closer
}
