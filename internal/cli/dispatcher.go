// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/ollama-chat/internal/commands"
	"github.com/jeranaias/ollama-chat/internal/export"
	"github.com/jeranaias/ollama-chat/internal/logger"
	"github.com/jeranaias/ollama-chat/internal/model"
	"github.com/jeranaias/ollama-chat/internal/router"
	"github.com/jeranaias/ollama-chat/internal/session"
	"github.com/jeranaias/ollama-chat/internal/tools"
)

// Outcome tells the loop what to do after a command.
type Outcome struct {
	// Quit ends the loop.
	Quit bool
	// Interrupted is set when a request was cancelled by Ctrl+C.
	Interrupted bool
}

// Responder is the part of *router.Responder the dispatcher uses.
type Responder interface {
	Respond(ctx context.Context, prompt string, streaming bool) router.Reply
}

// Shell is the part of *tools.UnsafeShell the dispatcher uses.
type Shell interface {
	OpenEditor(ctx context.Context, sess *session.Session, path string) error
	Passthrough(ctx context.Context, sess *session.Session, tool, args string) error
}

// Dispatcher performs the effect of one parsed command.
type Dispatcher struct {
	Session   *session.Session
	Responder Responder
	Shell     Shell
	Out       io.Writer

	// Stream selects streamed replies.
	Stream bool
	// Markdown renders buffered replies when non-nil.
	Markdown *glamour.TermRenderer

	// clear is swapped out by tests.
	clear func(io.Writer)
	log   *log.Logger
}

// NewDispatcher creates a dispatcher writing to out.
func NewDispatcher(sess *session.Session, responder Responder, shell Shell, out io.Writer) *Dispatcher {
	return &Dispatcher{
		Session:   sess,
		Responder: responder,
		Shell:     shell,
		Out:       out,
		Stream:    true,
		clear:     ClearScreen,
		log:       logger.With("component", "dispatcher", "session", sess.ID),
	}
}

// NewMarkdownRenderer builds the glamour renderer used for buffered replies.
func NewMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// Execute runs cmd. Errors are reported to the user and never end the loop.
func (d *Dispatcher) Execute(ctx context.Context, cmd commands.Command) Outcome {
	d.log.Debug("execute", "kind", cmd.Kind, "arg", cmd.Arg)

	switch cmd.Kind {
	case commands.KindEmpty:
	case commands.KindQuit:
		return Outcome{Quit: true}
	case commands.KindSave:
		d.save(cmd.Arg)
	case commands.KindClear:
		d.clear(d.Out)
	case commands.KindList:
		fmt.Fprintln(d.Out, tools.ListDirectory(d.Session, cmd.Arg))
	case commands.KindChangeDir:
		d.changeDir(cmd.Arg)
	case commands.KindLoad:
		d.load(cmd.Arg)
	case commands.KindMakeDir:
		d.makeDir(cmd.Arg)
	case commands.KindEdit:
		d.edit(ctx, cmd.Arg)
	case commands.KindNpm, commands.KindNpx:
		d.passthrough(ctx, cmd.Kind.String(), cmd.Arg)
	case commands.KindChat:
		return d.chat(ctx, cmd.Arg)
	}
	return Outcome{}
}

// =============================================================================
// HANDLERS
// =============================================================================

func (d *Dispatcher) save(filename string) {
	path, err := export.SaveTranscript(d.Session, filename)
	if err != nil {
		d.fail("Error saving chat history: %v", err)
		return
	}
	d.ok("Chat history saved to %s", path)
}

func (d *Dispatcher) changeDir(path string) {
	dir, err := tools.ChangeDirectory(d.Session, path)
	switch {
	case errors.Is(err, tools.ErrNotExist):
		d.fail("Error: Directory '%s' does not exist", path)
	case err != nil:
		d.fail("Error changing directory: %v", err)
	default:
		d.ok("Changed directory to: %s", dir)
	}
}

func (d *Dispatcher) load(path string) {
	full, err := tools.LoadFileAsContext(d.Session, path)
	switch {
	case errors.Is(err, tools.ErrNotExist):
		d.fail("Error: File '%s' does not exist", full)
	case err != nil:
		d.fail("Error loading file: %v", err)
	default:
		d.ok("Loaded content from: %s", full)
	}
}

func (d *Dispatcher) makeDir(name string) {
	dir, err := tools.CreateDirectory(d.Session, name)
	if err != nil {
		d.fail("Error creating directory: %v", err)
		return
	}
	d.ok("Created directory: %s", dir)
}

func (d *Dispatcher) edit(ctx context.Context, path string) {
	if err := d.Shell.OpenEditor(ctx, d.Session, path); err != nil {
		d.fail("Error opening editor: %v", err)
	}
}

func (d *Dispatcher) passthrough(ctx context.Context, tool, args string) {
	fmt.Fprintf(d.Out, "\n%s\n", RenderConditional(DimStyle, "Executing: "+tools.PassthroughCommand(tool, args)))
	if err := d.Shell.Passthrough(ctx, d.Session, tool, args); err != nil {
		d.fail("Error executing %s command: %v", tool, err)
	}
}

// chat sends line to the model. The user entry is recorded before the
// request; the reply is recorded unless the request was interrupted.
func (d *Dispatcher) chat(ctx context.Context, line string) Outcome {
	d.Session.Transcript.Append(model.NewUserEntry(line))

	fmt.Fprintf(d.Out, "\n%s", RenderConditional(AssistantStyle, model.RoleAssistant.DisplayName()+": "))
	reply := d.Responder.Respond(ctx, line, d.Stream)

	if reply.Interrupted {
		d.log.Info("request interrupted")
		return Outcome{Quit: true, Interrupted: true}
	}

	if !reply.Printed {
		d.printReply(reply)
	}
	d.Session.Transcript.Append(model.NewAssistantEntry(reply.Text, reply.Failed))
	return Outcome{}
}

func (d *Dispatcher) printReply(reply router.Reply) {
	if reply.Failed {
		fmt.Fprintln(d.Out, RenderConditional(ErrorStyle, reply.Text))
		return
	}
	if d.Markdown != nil {
		if rendered, err := d.Markdown.Render(reply.Text); err == nil {
			fmt.Fprint(d.Out, "\n"+strings.TrimRight(rendered, "\n")+"\n\n")
			return
		}
	}
	fmt.Fprint(d.Out, reply.Text+"\n\n")
}

// =============================================================================
// OUTPUT
// =============================================================================

func (d *Dispatcher) ok(format string, args ...any) {
	d.say(SuccessStyle, format, args...)
}

func (d *Dispatcher) fail(format string, args ...any) {
	d.say(ErrorStyle, format, args...)
}

// say prints "\n<message>\n", styling only the message line.
func (d *Dispatcher) say(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintf(d.Out, "\n%s\n", RenderConditional(style, fmt.Sprintf(format, args...)))
}
