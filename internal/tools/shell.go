// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"al.essio.dev/pkg/shellescape"

	"github.com/jeranaias/ollama-chat/internal/session"
)

// UnsafeShell runs user-supplied command lines through the OS shell with the
// terminal attached. Arguments are NOT sanitised.
type UnsafeShell struct {
	// Editor is the program the "nano" command launches.
	Editor string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	goos string
}

// NewUnsafeShell creates a shell bound to the process's stdio.
func NewUnsafeShell(editor string) *UnsafeShell {
	return &UnsafeShell{
		Editor: editor,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		goos:   runtime.GOOS,
	}
}

// OpenEditor opens path (resolved against the current path) in the editor
// and waits for it to exit. The path is quoted; the editor setting is not,
// so it may carry flags such as "code --wait".
func (s *UnsafeShell) OpenEditor(ctx context.Context, sess *session.Session, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("open editor: %w", ErrEmptyName)
	}
	return s.run(ctx, sess.CurrentPath, s.EditorCommand(sess.Resolve(expandHome(path))))
}

// EditorCommand composes the shell line that opens path.
func (s *UnsafeShell) EditorCommand(path string) string {
	if s.windows() {
		return fmt.Sprintf(`%s "%s"`, s.Editor, path)
	}
	return fmt.Sprintf("%s %s", s.Editor, shellescape.Quote(path))
}

// PassthroughCommand composes "tool args" exactly as typed.
func PassthroughCommand(tool, args string) string {
	if args == "" {
		return tool
	}
	return tool + " " + args
}

// Passthrough runs "tool args" in the current path. args is handed to the
// shell verbatim.
func (s *UnsafeShell) Passthrough(ctx context.Context, sess *session.Session, tool, args string) error {
	return s.run(ctx, sess.CurrentPath, PassthroughCommand(tool, args))
}

// run executes line via sh -c (cmd /C on Windows). A non-zero exit status is
// not an error; only failing to start or wait on the shell is.
func (s *UnsafeShell) run(ctx context.Context, dir, line string) error {
	var cmd *exec.Cmd
	if s.windows() {
		cmd = exec.CommandContext(ctx, "cmd", "/C", line)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", line)
	}
	cmd.Dir = dir
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run %q: %w", line, err)
	}
	return nil
}

func (s *UnsafeShell) windows() bool {
	if s.goos == "" {
		return runtime.GOOS == "windows"
	}
	return s.goos == "windows"
}
