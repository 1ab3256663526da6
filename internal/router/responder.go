// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/ollama-chat/internal/logger"
	"github.com/jeranaias/ollama-chat/internal/ollama"
	"github.com/jeranaias/ollama-chat/internal/session"
	"github.com/jeranaias/ollama-chat/internal/util"
)

// FailureSentinel stands in for the reply when the server cannot be reached
// or answers with something unusable.
const FailureSentinel = "Error: Failed to communicate with Ollama server"

// Generator is the subset of *ollama.Client the responder needs.
type Generator interface {
	Generate(ctx context.Context, req ollama.GenerateRequest) (*ollama.GenerateResponse, error)
	GenerateStream(ctx context.Context, req ollama.GenerateRequest) (*ollama.Stream, error)
}

// Reply is the outcome of one chat turn.
type Reply struct {
	// Text is the model's answer, or FailureSentinel.
	Text string
	// Failed is set when Text is the sentinel.
	Failed bool
	// Printed is set when Text already went to the output as it streamed.
	Printed bool
	// Interrupted is set when the request context was cancelled.
	Interrupted bool

	Instruction Instruction
	Err         error
	Stats       *ollama.StreamStats
}

// Responder sends chat lines to the model on behalf of a session.
type Responder struct {
	gen  Generator
	sess *session.Session
	out  io.Writer
	log  *log.Logger
}

// NewResponder creates a responder writing streamed fragments and error
// lines to out. Create it after logger.Configure so it picks up the level.
func NewResponder(gen Generator, sess *session.Session, out io.Writer) *Responder {
	return &Responder{
		gen:  gen,
		sess: sess,
		out:  out,
		log:  logger.With("component", "responder", "session", sess.ID),
	}
}

// GenerateResponse returns the reply text for prompt, or FailureSentinel.
func (r *Responder) GenerateResponse(ctx context.Context, prompt string, streaming bool) string {
	return r.Respond(ctx, prompt, streaming).Text
}

// Respond composes the full prompt from the session's context and sends it.
// With streaming, fragments are written to the output as they arrive and
// a blank line follows a complete reply. On any failure other than
// cancellation "\nError: <detail>" is written, plus a hint line for failures
// the user can fix. Failures return the sentinel,
// which is left for the caller to print.
func (r *Responder) Respond(ctx context.Context, prompt string, streaming bool) Reply {
	instruction := Classify(prompt)
	req := ollama.GenerateRequest{
		Model:  r.sess.Model,
		Prompt: BuildPrompt(instruction, r.sess.Context, prompt),
		Stream: streaming,
	}

	r.log.Debug("generate",
		"model", req.Model,
		"stream", streaming,
		"instruction", instruction,
		"context", r.sess.HasContext(),
		"context_bytes", len(r.sess.Context),
		"prompt", util.Preview(prompt, 60))

	start := time.Now()
	var (
		reply Reply
		err   error
	)
	if streaming {
		reply, err = r.stream(ctx, req)
	} else {
		reply, err = r.buffered(ctx, req)
	}
	reply.Instruction = instruction

	if err != nil {
		return r.fail(ctx, reply, err)
	}

	r.log.Debug("reply", "bytes", len(reply.Text), "elapsed", time.Since(start).Round(time.Millisecond))
	return reply
}

func (r *Responder) buffered(ctx context.Context, req ollama.GenerateRequest) (Reply, error) {
	resp, err := r.gen.Generate(ctx, req)
	if err != nil {
		return Reply{}, err
	}
	if tps := resp.TokensPerSecond(); tps > 0 {
		r.log.Debug("buffered stats", "tokens", resp.EvalCount, "tok_per_sec", fmt.Sprintf("%.1f", tps))
	}
	return Reply{Text: resp.Response}, nil
}

func (r *Responder) stream(ctx context.Context, req ollama.GenerateRequest) (Reply, error) {
	stream, err := r.gen.GenerateStream(ctx, req)
	if err != nil {
		return Reply{}, err
	}
	defer stream.Close()

	acc := ollama.NewAccumulator()
	if err := ollama.Drain(stream, ollama.NewPrinterSink(r.out), acc); err != nil {
		return Reply{Stats: acc.Stats}, err
	}
	fmt.Fprint(r.out, "\n\n")

	if acc.Done {
		r.log.Debug("stream stats", "summary", acc.Stats.Format())
	}
	return Reply{Text: acc.Content(), Printed: true, Stats: acc.Stats}, nil
}

func (r *Responder) fail(ctx context.Context, reply Reply, err error) Reply {
	interrupted := errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
	if !interrupted {
		fmt.Fprintf(r.out, "\nError: %v\n", err)
		if hint := r.hint(err); hint != "" {
			fmt.Fprintln(r.out, hint)
		}
	}

	kind := "unknown"
	var clientErr *ollama.ClientError
	if errors.As(err, &clientErr) {
		kind = clientErr.Type.String()
	}
	if ollama.IsInvalidResponse(err) {
		r.log.Error("generate failed", "type", kind, "err", err)
	} else {
		r.log.Warn("generate failed", "type", kind, "err", err)
	}

	reply.Text = FailureSentinel
	reply.Failed = true
	reply.Printed = false
	reply.Err = err
	reply.Interrupted = interrupted
	return reply
}

// hint suggests a fix for failures the user can act on.
func (r *Responder) hint(err error) string {
	switch {
	case ollama.IsNotRunning(err):
		return fmt.Sprintf("Is Ollama running at %s? Start it with: ollama serve", r.sess.ServerURL)
	case ollama.IsModelNotFound(err):
		return fmt.Sprintf("Model '%s' is not installed. Run: ollama pull %s", r.sess.Model, r.sess.Model)
	case ollama.IsTimeout(err):
		return "No reply within request_timeout. Raise it in the config or use streaming."
	default:
		return ""
	}
}
