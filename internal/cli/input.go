// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/ollama-chat/internal/commands"
	"github.com/jeranaias/ollama-chat/internal/logger"
)

// ErrInterrupted is returned by a LineReader when the user pressed Ctrl+C
// at the prompt.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads one line of user input. It returns io.EOF on end of input
// and ErrInterrupted on Ctrl+C.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// =============================================================================
// LINER INPUT
// =============================================================================

// LinerInput provides input history, line editing and path completion.
type LinerInput struct {
	line        *liner.State
	historyFile string
}

// NewLinerInput creates the terminal line reader. historyFile may be empty
// to keep history in memory only.
func NewLinerInput(completer *commands.Completer, historyFile string) *LinerInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabCircular)
	line.SetWordCompleter(completer.WordCompleter)

	in := &LinerInput{
		line:        line,
		historyFile: historyFile,
	}
	in.LoadHistory()
	return in
}

// LoadHistory loads command history from file.
func (in *LinerInput) LoadHistory() {
	if in.historyFile == "" {
		return
	}
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
}

// ReadLine prompts and returns the raw line. Non-blank lines are added to
// the history.
func (in *LinerInput) ReadLine(prompt string) (string, error) {
	input, err := in.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInterrupted
		}
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		in.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history to file with 0600 permissions.
func (in *LinerInput) SaveHistory() {
	if in.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(in.historyFile), 0755); err != nil {
		logger.Debug("history directory", "err", err)
		return
	}

	f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		logger.Debug("history file", "err", err)
		return
	}
	defer f.Close()

	in.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (in *LinerInput) Close() error {
	in.SaveHistory()
	return in.line.Close()
}
