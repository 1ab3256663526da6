// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/ollama-chat/internal/model"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the state shared by the REPL, the responder and the file helpers.
type Session struct {
	ID        string
	StartTime time.Time

	// Model is the model identifier sent with each generate request.
	Model string
	// ServerURL is the inference server base address, without a trailing slash.
	ServerURL string

	Transcript *model.Transcript

	// Context is the text of the last file loaded; empty when none.
	Context string
	// ContextSource is the absolute path Context was read from.
	ContextSource string

	// CurrentPath is absolute and was an existing directory when last set.
	CurrentPath string

	savedLen int
}

// New creates a session rooted at the user's home directory.
func New(modelName, serverURL string) (*Session, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine home directory: %w", err)
	}
	return NewAt(modelName, serverURL, home)
}

// NewAt creates a session rooted at dir, which must be an existing directory.
func NewAt(modelName, serverURL, dir string) (*Session, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("start directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("start directory %s is not a directory", abs)
	}

	return &Session{
		ID:          uuid.NewString(),
		StartTime:   time.Now(),
		Model:       modelName,
		ServerURL:   trimSlash(serverURL),
		Transcript:  model.NewTranscript(),
		CurrentPath: abs,
	}, nil
}

func trimSlash(s string) string {
	for len(s) > 1 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// =============================================================================
// PATHS
// =============================================================================

// Resolve returns p as an absolute, cleaned path. Relative paths are joined
// onto CurrentPath; absolute paths are only cleaned.
func (s *Session) Resolve(p string) string {
	if p == "" {
		return s.CurrentPath
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.CurrentPath, p)
}

// SetCurrentPath moves the session to dir. The caller has already checked
// that dir exists and is a directory.
func (s *Session) SetCurrentPath(dir string) {
	s.CurrentPath = filepath.Clean(dir)
}

// =============================================================================
// CONTEXT
// =============================================================================

// SetContext replaces the loaded context.
func (s *Session) SetContext(source, content string) {
	s.ContextSource = source
	s.Context = content
}

// HasContext reports whether a file has been loaded.
func (s *Session) HasContext() bool {
	return s.ContextSource != ""
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// HasUnsaved reports whether entries were added since the last save.
func (s *Session) HasUnsaved() bool {
	return s.Transcript.Len() > s.savedLen
}

// MarkSaved notes that the transcript as it stands has been written out.
func (s *Session) MarkSaved() {
	s.savedLen = s.Transcript.Len()
}

// Duration returns how long the session has been running.
func (s *Session) Duration() time.Duration {
	return time.Since(s.StartTime)
}

// FormatDuration renders d compactly, e.g. "1h02m", "3m05s" or "42s".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}
