// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/ollama-chat/internal/model"
	"github.com/jeranaias/ollama-chat/internal/session"
	"github.com/jeranaias/ollama-chat/internal/util"
)

// FormatText renders entries as "role: content\n" lines.
func FormatText(entries []model.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Role.String())
		b.WriteString(": ")
		b.WriteString(e.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

// =============================================================================
// FILES
// =============================================================================

// DefaultFilename returns chat_history_<YYYYMMDD_HHMMSS>.txt for t.
func DefaultFilename(t time.Time) string {
	return fmt.Sprintf("chat_history_%s.txt", t.Format("20060102_150405"))
}

// SaveTranscript writes the session transcript to filename, or to the default
// name when filename is empty. Relative names resolve against the current
// path. An existing file is replaced. Returns the path written.
func SaveTranscript(sess *session.Session, filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		filename = DefaultFilename(time.Now())
	}
	path := sess.Resolve(filename)

	content := FormatText(sess.Transcript.Entries())
	if err := util.AtomicWriteFile(path, []byte(content), 0644); err != nil {
		return path, fmt.Errorf("write file: %w", err)
	}

	sess.MarkSaved()
	return path, nil
}
