// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/ollama-chat/internal/session"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotExist reports a path that does not exist (or, for cd, is not a
	// directory).
	ErrNotExist = errors.New("does not exist")

	// ErrEmptyName is returned by CreateDirectory for a blank name.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNotText is returned by LoadFileAsContext for non UTF-8 content.
	ErrNotText = errors.New("file is not valid UTF-8 text")
)

// =============================================================================
// LISTING
// =============================================================================

// ListDirectory renders the contents of path, or of the current path when
// path is empty. Relative paths are resolved against the current path.
// Anything that is not a regular file after following symlinks is listed
// as a directory. On failure the report is "\nError reading directory: ...".
func ListDirectory(sess *session.Session, path string) string {
	target := sess.CurrentPath
	if path != "" {
		target = sess.Resolve(expandHome(path))
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return fmt.Sprintf("\nError reading directory: %v", err)
	}

	dirs := make([]string, 0, len(entries))
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		info, err := os.Stat(filepath.Join(target, e.Name()))
		if err == nil && info.Mode().IsRegular() {
			files = append(files, fmt.Sprintf("📄 %s (%s)", e.Name(), FormatSize(info.Size())))
			continue
		}
		dirs = append(dirs, fmt.Sprintf("📁 %s/", e.Name()))
	}
	slices.Sort(dirs)
	slices.Sort(files)

	var b strings.Builder
	fmt.Fprintf(&b, "\nDirectory contents of %s:\n", target)
	b.WriteString("\nDirectories:\n")
	b.WriteString(strings.Join(dirs, "\n"))
	b.WriteString("\n\nFiles:\n")
	b.WriteString(strings.Join(files, "\n"))
	return b.String()
}

// FormatSize renders n bytes with one decimal place, dividing by 1024 through
// B, KB, MB and GB; anything larger is expressed in TB.
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f%s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1fTB", size)
}

// =============================================================================
// NAVIGATION
// =============================================================================

// ChangeDirectory moves the session to path and returns the new absolute
// path. An empty path means the home directory. The session is unchanged
// unless the target exists and is a directory.
func ChangeDirectory(sess *session.Session, path string) (string, error) {
	if path == "" {
		path = "~"
	}
	target := sess.Resolve(expandHome(path))

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("directory '%s' %w", path, ErrNotExist)
	}

	sess.SetCurrentPath(target)
	return sess.CurrentPath, nil
}

// CreateDirectory creates name (and any parents) under the current path and
// returns its absolute path. An existing directory is not an error.
func CreateDirectory(sess *session.Session, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("create directory: %w", ErrEmptyName)
	}
	target := sess.Resolve(expandHome(name))
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	return target, nil
}

// =============================================================================
// CONTEXT
// =============================================================================

// LoadFileAsContext reads path in full and makes it the session's context.
// It returns the absolute path read. On any failure the previous context
// is kept.
func LoadFileAsContext(sess *session.Session, path string) (string, error) {
	target := sess.Resolve(expandHome(path))

	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return target, fmt.Errorf("file '%s' %w", target, ErrNotExist)
		}
		return target, fmt.Errorf("load file: %w", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return target, fmt.Errorf("load file: %w", err)
	}
	if !utf8.Valid(data) {
		return target, fmt.Errorf("load file %s: %w", target, ErrNotText)
	}

	sess.SetContext(target, string(data))
	return target, nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
