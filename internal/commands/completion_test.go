// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ollama-chat/internal/session"
)

func newCompleterFixture(t *testing.T) (*Completer, *session.Session) {
	t.Helper()
	dir := t.TempDir()
	for _, d := range []string{"projects", "photos", "src/pkg"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0755))
	}
	for _, f := range []string{"plan.txt", "readme.md", "src/main.go", "src/model.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
	}

	sess, err := session.NewAt("m", "http://h", dir)
	require.NoError(t, err)
	return NewCompleter(sess), sess
}

func collect(c *Completer, line string) []string {
	var out []string
	for state := 0; ; state++ {
		s, ok := c.Complete(line, state)
		if !ok {
			return out
		}
		out = append(out, s)
	}
}

func TestComplete_Prefix(t *testing.T) {
	c, _ := newCompleterFixture(t)

	assert.Equal(t, []string{"photos/", "plan.txt ", "projects/"}, collect(c, "cd p"))
	assert.Equal(t, []string{"readme.md "}, collect(c, "load r"))
	assert.Equal(t, []string{"projects/"}, collect(c, "nano pr"))
}

func TestComplete_EmptyWordListsAll(t *testing.T) {
	c, _ := newCompleterFixture(t)

	got := collect(c, "cd ")
	assert.Equal(t, []string{"photos/", "plan.txt ", "projects/", "readme.md ", "src/"}, got)
}

func TestComplete_SubdirectoryKeepsDirPart(t *testing.T) {
	c, _ := newCompleterFixture(t)

	assert.Equal(t, []string{"src/main.go ", "src/model.go "}, collect(c, "load src/m"))
	assert.Equal(t, []string{"src/main.go ", "src/model.go ", "src/pkg/"}, collect(c, "load src/"))
}

func TestComplete_CaseInsensitiveCommand(t *testing.T) {
	c, _ := newCompleterFixture(t)
	assert.Equal(t, []string{"readme.md "}, collect(c, "LOAD r"))
	assert.Equal(t, []string{"readme.md "}, collect(c, "Nano r"))
}

func TestComplete_OtherLinesGetNothing(t *testing.T) {
	c, _ := newCompleterFixture(t)

	for _, line := range []string{"ls p", "mkdir p", "tell me about p", "cd", "loadp"} {
		_, ok := c.Complete(line, 0)
		assert.False(t, ok, line)
	}
}

func TestComplete_UnreadableDirectory(t *testing.T) {
	c, _ := newCompleterFixture(t)
	_, ok := c.Complete("cd nowhere/x", 0)
	assert.False(t, ok)
	_, ok = c.Complete("cd p", -1)
	assert.False(t, ok)
}

func TestComplete_Absolute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	c, sess := newCompleterFixture(t)
	abs := filepath.Join(sess.CurrentPath, "src") + "/m"

	assert.Equal(t, []string{
		filepath.Join(sess.CurrentPath, "src", "main.go") + " ",
		filepath.Join(sess.CurrentPath, "src", "model.go") + " ",
	}, collect(c, "load "+abs))
}

func TestComplete_FollowsCurrentPath(t *testing.T) {
	c, sess := newCompleterFixture(t)
	sess.SetCurrentPath(filepath.Join(sess.CurrentPath, "src"))

	assert.Equal(t, []string{"main.go ", "model.go "}, collect(c, "load m"))
}

func TestWordCompleter(t *testing.T) {
	c, _ := newCompleterFixture(t)

	head, completions, tail := c.WordCompleter("load src/ma", len("load src/ma"))
	assert.Equal(t, "load ", head)
	assert.Equal(t, []string{"src/main.go "}, completions)
	assert.Equal(t, "", tail)

	// Cursor in the middle of the line.
	line := "cd pr and more"
	head, completions, tail = c.WordCompleter(line, len("cd pr"))
	assert.Equal(t, "cd ", head)
	assert.Equal(t, []string{"projects/"}, completions)
	assert.Equal(t, " and more", tail)
}

func TestWordCompleter_RuneCursor(t *testing.T) {
	c, sess := newCompleterFixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(sess.CurrentPath, "café"), 0755))

	line := "cd caf"
	head, completions, tail := c.WordCompleter(line, len([]rune(line)))
	assert.Equal(t, "cd ", head)
	assert.Equal(t, []string{"café/"}, completions)
	assert.Empty(t, tail)
}
