// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger configures the structured logger used across ollama-chat.
//
// Diagnostics go to stderr (or a file) at "warn" by default so they stay out
// of the chat transcript printed on stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the process-wide logger. Configure replaces it.
var Logger = newLogger(os.Stderr, log.WarnLevel)

// closer holds the log file opened by Configure, if any.
var closer io.Closer

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	l.SetStyles(levelStyles())
	return l
}

// Configure sets the level and destination of Logger.
// An empty file keeps stderr. Unknown levels are an error.
func Configure(level, file string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		Close()
		closer = f
		out = f
	}

	Logger = newLogger(out, lvl)
	if file != "" {
		// timestamps are useful once the output outlives the terminal
		Logger.SetReportTimestamp(true)
	}
	return nil
}

// Close releases the log file opened by Configure.
func Close() {
	if closer != nil {
		closer.Close()
		closer = nil
	}
}

// ParseLevel maps a level name to a log.Level. Empty means warn.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "", "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	default:
		return log.WarnLevel, fmt.Errorf("unknown log level %q (want debug, info, warn, error)", level)
	}
}

// With returns a child of Logger carrying the given key/value pairs.
func With(keyvals ...interface{}) *log.Logger {
	return Logger.With(keyvals...)
}

// Debug logs at debug level.
func Debug(msg interface{}, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }

// Info logs at info level.
func Info(msg interface{}, keyvals ...interface{}) { Logger.Info(msg, keyvals...) }

// Warn logs at warn level.
func Warn(msg interface{}, keyvals ...interface{}) { Logger.Warn(msg, keyvals...) }

// Error logs at error level.
func Error(msg interface{}, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	badge := func(label, bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(label).
			Padding(0, 1).
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("15"))
	}
	styles.Levels[log.DebugLevel] = badge("DEBUG", "240")
	styles.Levels[log.InfoLevel] = badge("INFO", "33")
	styles.Levels[log.WarnLevel] = badge("WARN", "214")
	styles.Levels[log.ErrorLevel] = badge("ERROR", "196")
	styles.Levels[log.FatalLevel] = badge("FATAL", "88")
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Keys["component"] = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	return styles
}
