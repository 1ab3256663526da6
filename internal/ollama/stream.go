// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// =============================================================================
// STREAM
// =============================================================================

// Stream iterates over the NDJSON lines of a streamed generate reply.
//
//	for {
//	    chunk, err := stream.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Content)
//	}
type Stream struct {
	ctx    context.Context
	body   io.ReadCloser
	reader *bufio.Reader
	model  string
	done   bool
}

// NewStream wraps a response body. ctx is consulted to tell cancellation
// apart from a broken connection.
func NewStream(ctx context.Context, body io.ReadCloser) *Stream {
	return &Stream{
		ctx:    ctx,
		body:   body,
		reader: bufio.NewReader(body),
	}
}

// Next returns the next chunk. It returns io.EOF after the body ends or after
// the line carrying "done": true. Blank lines are skipped. A line that is not
// valid JSON, or one carrying an "error" field, ends the stream with an
// ErrTypeInvalidResponse error.
func (s *Stream) Next() (StreamChunk, error) {
	for {
		if s.done {
			return StreamChunk{}, io.EOF
		}

		line, readErr := s.reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			s.done = true
			if ctxErr := s.ctx.Err(); ctxErr != nil {
				return StreamChunk{}, transportError(ctxErr)
			}
			return StreamChunk{}, transportError(readErr)
		}
		if readErr == io.EOF {
			s.done = true
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var resp GenerateResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			s.done = true
			return StreamChunk{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "malformed stream line", Cause: err}
		}
		if resp.Error != "" {
			s.done = true
			return StreamChunk{}, &ClientError{Type: ErrTypeInvalidResponse, Message: resp.Error}
		}
		if resp.Model != "" {
			s.model = resp.Model
		}
		if resp.Done {
			s.done = true
		}

		chunk := chunkFromResponse(&resp)
		chunk.Model = s.model
		return chunk, nil
	}
}

// Close releases the underlying body.
func (s *Stream) Close() error {
	s.done = true
	return s.body.Close()
}

// =============================================================================
// SINKS
// =============================================================================

// Sink receives every chunk of a drained stream in order.
type Sink interface {
	Consume(chunk StreamChunk) error
}

// Drain reads s to the end, handing each chunk to every sink in turn. It
// returns nil on a clean end of stream, otherwise the first stream or sink
// error. Chunks already delivered stay delivered.
func Drain(s *Stream, sinks ...Sink) error {
	for {
		chunk, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for _, sink := range sinks {
			if err := sink.Consume(chunk); err != nil {
				return err
			}
		}
	}
}

// PrinterSink writes each fragment to w as soon as it arrives.
type PrinterSink struct {
	w io.Writer
}

// NewPrinterSink creates a sink that prints to w. When w is an
// *os.File such as os.Stdout, writes are unbuffered.
func NewPrinterSink(w io.Writer) *PrinterSink {
	return &PrinterSink{w: w}
}

// Consume writes chunk.Content.
func (p *PrinterSink) Consume(chunk StreamChunk) error {
	if chunk.Content == "" {
		return nil
	}
	_, err := io.WriteString(p.w, chunk.Content)
	return err
}

// =============================================================================
// ACCUMULATOR
// =============================================================================

// Accumulator collects fragments into the full reply and records timing.
type Accumulator struct {
	content strings.Builder
	Stats   *StreamStats
	Done    bool
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{Stats: NewStreamStats()}
}

// Consume appends chunk.Content.
func (a *Accumulator) Consume(chunk StreamChunk) error {
	if chunk.Content != "" && a.content.Len() == 0 {
		a.Stats.RecordFirstToken()
	}
	a.content.WriteString(chunk.Content)
	if chunk.Done {
		a.Done = true
		a.Stats.Finalize(chunk)
	}
	return nil
}

// Content returns everything received so far.
func (a *Accumulator) Content() string {
	return a.content.String()
}

// =============================================================================
// STREAM STATISTICS
// =============================================================================

// StreamStats holds statistics collected during streaming.
type StreamStats struct {
	StartTime      time.Time
	FirstTokenTime time.Time
	EndTime        time.Time

	// Durations reported by the server on the final line.
	TotalDuration time.Duration
	EvalDuration  time.Duration

	PromptTokens     int
	CompletionTokens int

	TTFT            time.Duration
	TokensPerSecond float64
}

// NewStreamStats creates a new StreamStats with start time set.
func NewStreamStats() *StreamStats {
	return &StreamStats{StartTime: time.Now()}
}

// RecordFirstToken marks the time of first token arrival.
func (s *StreamStats) RecordFirstToken() {
	if s.FirstTokenTime.IsZero() {
		s.FirstTokenTime = time.Now()
		s.TTFT = s.FirstTokenTime.Sub(s.StartTime)
	}
}

// Finalize copies the server-side figures from the final chunk.
func (s *StreamStats) Finalize(chunk StreamChunk) {
	s.EndTime = time.Now()
	s.TotalDuration = chunk.TotalDuration
	s.EvalDuration = chunk.EvalDuration
	s.PromptTokens = chunk.PromptTokens
	s.CompletionTokens = chunk.CompletionTokens

	if s.EvalDuration > 0 {
		s.TokensPerSecond = float64(s.CompletionTokens) / s.EvalDuration.Seconds()
	}
}

// Format returns a one-line summary for debug logs.
func (s *StreamStats) Format() string {
	return fmt.Sprintf("%s | %d tokens | %.1f tok/s | TTFT %dms",
		s.TotalDuration.Round(time.Millisecond), s.CompletionTokens, s.TokensPerSecond, s.TTFT.Milliseconds())
}
