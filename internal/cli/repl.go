// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/jeranaias/ollama-chat/internal/commands"
	"github.com/jeranaias/ollama-chat/internal/logger"
	"github.com/jeranaias/ollama-chat/internal/ollama"
	"github.com/jeranaias/ollama-chat/internal/session"
)

// Prober checks the server before the first prompt.
type Prober interface {
	CheckRunning(ctx context.Context) error
	GetModel(ctx context.Context, name string) (*ollama.ShowModelResponse, error)
}

// App is the interactive chat loop.
type App struct {
	Session    *session.Session
	Dispatcher *Dispatcher
	Input      LineReader
	Out        io.Writer

	// Prober is optional. Probe failures are reported as warnings.
	Prober Prober

	// Signals delivers interrupts received while a request is running.
	// When nil, Run subscribes to os.Interrupt itself.
	Signals <-chan os.Signal

	mu      sync.Mutex
	cancel  context.CancelFunc
	reading bool

	// atPrompt receives interrupts that arrive while waiting for input.
	atPrompt chan struct{}
	// pending is a read that was abandoned by an interrupt and may still
	// deliver a line.
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewApp wires the loop around an existing dispatcher.
func NewApp(sess *session.Session, d *Dispatcher, input LineReader, out io.Writer) *App {
	return &App{
		Session:    sess,
		Dispatcher: d,
		Input:      input,
		Out:        out,
		atPrompt:   make(chan struct{}, 1),
	}
}

// Run prints the banner and reads commands until the user leaves. It then
// offers to save unsaved entries. Run returns nil on every normal
// exit path.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.Out, "Initializing Ollama Chat...")
	a.probe(ctx)
	PrintBanner(a.Out, a.Session.Model)

	stop := a.watchSignals()
	defer stop()

	err := a.loop(ctx)
	a.finish(ctx)
	return err
}

func (a *App) loop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(a.Out, "\n")
		line, err := a.readLine(ctx, Prompt(a.Session.CurrentPath))
		if err != nil {
			if errors.Is(err, ErrInterrupted) || errors.Is(err, io.EOF) {
				a.exiting()
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		cmd := commands.Parse(line)
		var outcome Outcome
		if cmd.Kind == commands.KindChat {
			outcome = a.request(ctx, cmd)
		} else {
			outcome = a.Dispatcher.Execute(ctx, cmd)
		}

		if outcome.Interrupted {
			a.exiting()
			return nil
		}
		if outcome.Quit {
			return nil
		}
	}
}

// request runs a chat command under a context the interrupt handler can
// cancel.
func (a *App) request(ctx context.Context, cmd commands.Command) Outcome {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.cancel = nil
		a.mu.Unlock()
	}()

	return a.Dispatcher.Execute(reqCtx, cmd)
}

// readLine reads one line of input. An interrupt delivered as a signal
// while waiting ends the read with ErrInterrupted, which covers line readers
// that do not handle Ctrl+C themselves. The abandoned read is picked up by
// the next call.
func (a *App) readLine(ctx context.Context, prompt string) (string, error) {
	a.mu.Lock()
	a.reading = true
	select {
	case <-a.atPrompt:
	default:
	}
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.reading = false
		a.mu.Unlock()
	}()

	if a.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := a.Input.ReadLine(prompt)
			ch <- readResult{line: line, err: err}
		}()
		a.pending = ch
	} else {
		fmt.Fprint(a.Out, prompt)
	}

	select {
	case r := <-a.pending:
		a.pending = nil
		return r.line, r.err
	case <-a.atPrompt:
		return "", ErrInterrupted
	case <-ctx.Done():
		return "", ErrInterrupted
	}
}

// interrupt cancels the in-flight request or ends the read in progress.
// Interrupts at any other time, such as while npm or the editor runs, are
// left to the child process in the foreground.
func (a *App) interrupt() {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case a.cancel != nil:
		a.cancel()
	case a.reading:
		select {
		case a.atPrompt <- struct{}{}:
		default:
		}
	}
}

func (a *App) watchSignals() func() {
	sigs := a.Signals
	var owned chan os.Signal
	if sigs == nil {
		owned = make(chan os.Signal, 1)
		signal.Notify(owned, os.Interrupt)
		sigs = owned
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigs:
				logger.Debug("interrupt received")
				a.interrupt()
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		if owned != nil {
			signal.Stop(owned)
		}
	}
}

func (a *App) exiting() {
	fmt.Fprintln(a.Out, "\n\nExiting chat...")
}

// finish asks once whether to save a transcript with unsaved entries, then
// says goodbye.
func (a *App) finish(ctx context.Context) {
	if a.Session.HasUnsaved() {
		fmt.Fprint(a.Out, "\n")
		answer, err := a.readLine(context.WithoutCancel(ctx), "Would you like to save the chat history? (y/n): ")
		if err == nil && strings.EqualFold(strings.TrimSpace(answer), "y") {
			a.Dispatcher.save("")
		}
	}
	fmt.Fprintln(a.Out, "\n"+RenderConditional(TitleStyle, "Thank you for using Ollama Chat!"))
}

// probe reports an unreachable server or a missing model without stopping
// the session.
func (a *App) probe(ctx context.Context) {
	if a.Prober == nil {
		return
	}

	if err := a.Prober.CheckRunning(ctx); err != nil {
		logger.Warn("server check failed", "url", a.Session.ServerURL, "err", err)
		a.warn("Warning: cannot reach Ollama at %s (%v)", a.Session.ServerURL, err)
		return
	}

	info, err := a.Prober.GetModel(ctx, a.Session.Model)
	switch {
	case ollama.IsModelNotFound(err):
		a.warn("Warning: model '%s' not found. Run: ollama pull %s", a.Session.Model, a.Session.Model)
	case err != nil:
		logger.Warn("model check failed", "model", a.Session.Model, "err", err)
	default:
		logger.Info("model ready",
			"model", a.Session.Model,
			"family", info.Details.Family,
			"parameters", info.Details.ParameterSize,
			"quantization", info.Details.QuantizationLevel)
	}
}

func (a *App) warn(format string, args ...any) {
	fmt.Fprintln(a.Out, RenderConditional(WarningStyle, fmt.Sprintf(format, args...)))
}
