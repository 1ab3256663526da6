// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ollama-chat/internal/commands"
	"github.com/jeranaias/ollama-chat/internal/model"
	"github.com/jeranaias/ollama-chat/internal/router"
)

func exec(d *Dispatcher, line string) Outcome {
	return d.Execute(context.Background(), commands.Parse(line))
}

func TestDispatcher_Quit(t *testing.T) {
	d, _, _, out := newTestDispatcher(t)

	assert.True(t, exec(d, "quit").Quit)
	assert.True(t, exec(d, "EXIT").Quit)
	assert.Empty(t, out.String())
}

func TestDispatcher_EmptyLine(t *testing.T) {
	d, resp, _, out := newTestDispatcher(t)

	assert.Equal(t, Outcome{}, exec(d, "   "))
	assert.Empty(t, out.String())
	assert.Empty(t, resp.Prompts())
}

func TestDispatcher_Clear(t *testing.T) {
	d, _, _, out := newTestDispatcher(t)

	exec(d, "clear")
	assert.Equal(t, "<clear>", out.String())
}

func TestDispatcher_ChangeDirectory(t *testing.T) {
	d, _, _, out := newTestDispatcher(t)
	root := d.Session.CurrentPath
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0755))

	exec(d, "cd src")
	assert.Equal(t, filepath.Join(root, "src"), d.Session.CurrentPath)
	assert.Equal(t, "\nChanged directory to: "+filepath.Join(root, "src")+"\n", out.String())

	out.Reset()
	exec(d, "cd missing")
	assert.Equal(t, filepath.Join(root, "src"), d.Session.CurrentPath)
	assert.Equal(t, "\nError: Directory 'missing' does not exist\n", out.String())
}

func TestDispatcher_MakeDirectory(t *testing.T) {
	d, _, _, out := newTestDispatcher(t)
	want := filepath.Join(d.Session.CurrentPath, "a", "b")

	exec(d, "mkdir a/b")

	assert.DirExists(t, want)
	assert.Equal(t, "\nCreated directory: "+want+"\n", out.String())
}

func TestDispatcher_Load(t *testing.T) {
	d, _, _, out := newTestDispatcher(t)
	path := filepath.Join(d.Session.CurrentPath, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("remember the milk"), 0644))

	exec(d, "load notes.txt")
	assert.Equal(t, "remember the milk", d.Session.Context)
	assert.Equal(t, "\nLoaded content from: "+path+"\n", out.String())

	out.Reset()
	exec(d, "load gone.txt")
	assert.Equal(t, "remember the milk", d.Session.Context)
	missing := filepath.Join(d.Session.CurrentPath, "gone.txt")
	assert.Equal(t, "\nError: File '"+missing+"' does not exist\n", out.String())
}

func TestDispatcher_List(t *testing.T) {
	d, _, _, out := newTestDispatcher(t)
	require.NoError(t, os.WriteFile(filepath.Join(d.Session.CurrentPath, "a.txt"), []byte("abc"), 0644))

	exec(d, "ls")

	assert.Contains(t, out.String(), "Directory contents of "+d.Session.CurrentPath)
	assert.Contains(t, out.String(), "📄 a.txt (3.0B)")
}

func TestDispatcher_Save(t *testing.T) {
	d, _, _, out := newTestDispatcher(t)
	d.Session.Transcript.AddExchange("hello", "hi", false)

	exec(d, "save log.txt")

	path := filepath.Join(d.Session.CurrentPath, "log.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "user: hello\nassistant: hi\n", string(data))
	assert.Equal(t, "\nChat history saved to "+path+"\n", out.String())
	assert.False(t, d.Session.HasUnsaved())
}

func TestDispatcher_SaveError(t *testing.T) {
	d, _, _, out := newTestDispatcher(t)

	exec(d, "save no/such/dir/log.txt")

	assert.Contains(t, out.String(), "\nError saving chat history: ")
}

func TestDispatcher_Passthrough(t *testing.T) {
	d, _, shell, out := newTestDispatcher(t)

	exec(d, "npm install --save-dev vite")
	exec(d, "npx create-vite app")

	require.Len(t, shell.calls, 2)
	assert.Equal(t, shellCall{tool: "npm", arg: "install --save-dev vite", dir: d.Session.CurrentPath}, shell.calls[0])
	assert.Equal(t, "npx", shell.calls[1].tool)
	assert.Equal(t, "\nExecuting: npm install --save-dev vite\n\nExecuting: npx create-vite app\n", out.String())
}

func TestDispatcher_PassthroughError(t *testing.T) {
	d, _, shell, out := newTestDispatcher(t)
	shell.err = errors.New("exec: \"npm\": not found")

	exec(d, "npm test")

	assert.Contains(t, out.String(), "\nError executing npm command: exec: \"npm\": not found\n")
}

func TestDispatcher_Editor(t *testing.T) {
	d, _, shell, out := newTestDispatcher(t)

	exec(d, "nano todo.md")
	require.Len(t, shell.calls, 1)
	assert.Equal(t, "todo.md", shell.calls[0].arg)
	assert.Empty(t, out.String())

	shell.err = errors.New("boom")
	exec(d, "nano todo.md")
	assert.Equal(t, "\nError opening editor: boom\n", out.String())
}

func TestDispatcher_Chat(t *testing.T) {
	d, resp, _, out := newTestDispatcher(t)

	outcome := exec(d, "  what is this  ")

	assert.Equal(t, Outcome{}, outcome)
	assert.Equal(t, []string{"what is this"}, resp.Prompts())
	assert.Equal(t, "\nAssistant: hi there\n\n", out.String())

	entries := d.Session.Transcript.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, model.RoleUser, entries[0].Role)
	assert.Equal(t, "what is this", entries[0].Content)
	assert.Equal(t, model.RoleAssistant, entries[1].Role)
	assert.Equal(t, "hi there", entries[1].Content)
}

func TestDispatcher_ChatStreamedNotReprinted(t *testing.T) {
	d, resp, _, out := newTestDispatcher(t)
	resp.reply = router.Reply{Text: "streamed", Printed: true}

	exec(d, "hello")

	assert.Equal(t, "\nAssistant: ", out.String())
	assert.Equal(t, 2, d.Session.Transcript.Len())
}

func TestDispatcher_ChatFailure(t *testing.T) {
	d, resp, _, out := newTestDispatcher(t)
	resp.reply = router.Reply{Text: router.FailureSentinel, Failed: true}

	exec(d, "fix this bug")

	assert.Contains(t, out.String(), router.FailureSentinel+"\n")
	entries := d.Session.Transcript.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, router.FailureSentinel, entries[1].Content)
	assert.True(t, entries[1].Failed)
	assert.Equal(t, 1, d.Session.Transcript.Failures())
}

func TestDispatcher_ChatInterrupted(t *testing.T) {
	d, resp, _, _ := newTestDispatcher(t)
	resp.block = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome := d.Execute(ctx, commands.Parse("hello"))

	assert.True(t, outcome.Quit)
	assert.True(t, outcome.Interrupted)
	entries := d.Session.Transcript.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.RoleUser, entries[0].Role)
}

func TestDispatcher_ChatMarkdown(t *testing.T) {
	d, resp, _, out := newTestDispatcher(t)
	renderer, err := NewMarkdownRenderer(80)
	require.NoError(t, err)
	d.Markdown = renderer
	resp.reply = router.Reply{Text: "# Title\n\nsome text"}

	exec(d, "explain")

	assert.Contains(t, out.String(), "Title")
	assert.Contains(t, out.String(), "some text")
	// The transcript keeps the raw markdown.
	assert.Equal(t, "# Title\n\nsome text", d.Session.Transcript.Entries()[1].Content)
}
