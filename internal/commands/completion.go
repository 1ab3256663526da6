// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/ollama-chat/internal/session"
)

// =============================================================================
// COMPLETER
// =============================================================================

// pathCommands are the line prefixes that get path completion.
var pathCommands = []string{"cd ", "load ", "nano "}

// wordDelims separate the word being completed from the rest of the line.
const wordDelims = " \t\n;"

// Completer completes file and directory names relative to a session's
// current path.
type Completer struct {
	sess *session.Session
}

// NewCompleter creates a completer reading sess.CurrentPath on every call.
func NewCompleter(sess *session.Session) *Completer {
	return &Completer{sess: sess}
}

// Complete returns the state-th candidate for the last word of line and
// false once the candidates are exhausted, the line is not a path command,
// or the directory cannot be read.
func (c *Completer) Complete(line string, state int) (string, bool) {
	if state < 0 {
		return "", false
	}
	start := strings.LastIndexAny(line, wordDelims) + 1
	candidates := c.Candidates(line, line[start:])
	if state >= len(candidates) {
		return "", false
	}
	return candidates[state], true
}

// WordCompleter implements liner.WordCompleter: it splits the line at the
// cursor (a rune offset) and returns replacements for the word under it.
func (c *Completer) WordCompleter(line string, pos int) (head string, completions []string, tail string) {
	runes := []rune(line)
	if pos < 0 || pos > len(runes) {
		pos = len(runes)
	}
	before, tail := string(runes[:pos]), string(runes[pos:])
	start := strings.LastIndexAny(before, wordDelims) + 1
	head, word := before[:start], before[start:]
	return head, c.Candidates(line, word), tail
}

// Candidates lists completions for word within line. Directories end in "/",
// files in a space. An absolute first argument searches from the filesystem
// root, anything else from the current path.
func (c *Completer) Candidates(line, word string) []string {
	if !isPathCommand(line) {
		return nil
	}

	fields := strings.Fields(line)
	arg := strings.Join(fields[1:], " ")

	base := c.sess.CurrentPath
	if filepath.IsAbs(arg) || strings.HasPrefix(arg, "/") {
		base = string(filepath.Separator)
	}

	// Split word into "dir/" and the name prefix being typed.
	dirPart, filePart := "", word
	if i := strings.LastIndexAny(word, `/`+string(filepath.Separator)); i >= 0 {
		dirPart, filePart = word[:i+1], word[i+1:]
	}

	searchDir := base
	if dirPart != "" {
		if filepath.IsAbs(dirPart) {
			searchDir = dirPart
		} else {
			searchDir = filepath.Join(base, dirPart)
		}
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil
	}

	prefix := norm.NFC.String(filePart)
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(norm.NFC.String(name), prefix) {
			continue
		}
		suffix := " "
		if info, err := os.Stat(filepath.Join(searchDir, name)); err == nil && info.IsDir() {
			suffix = "/"
		}
		out = append(out, dirPart+name+suffix)
	}
	return out
}

func isPathCommand(line string) bool {
	for _, p := range pathCommands {
		if len(line) >= len(p) && strings.EqualFold(line[:len(p)], p) {
			return true
		}
	}
	return false
}
