// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"time"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// GenerateRequest is the request body for the /api/generate endpoint.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// ShowModelRequest is the request for the /api/show endpoint.
type ShowModelRequest struct {
	Name string `json:"name"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GenerateResponse is one object from /api/generate. A buffered reply is a
// single object; a streamed reply is one object per line.
type GenerateResponse struct {
	Model              string    `json:"model"`
	CreatedAt          time.Time `json:"created_at"`
	Response           string    `json:"response"`
	Done               bool      `json:"done"`
	DoneReason         string    `json:"done_reason,omitempty"`
	TotalDuration      int64     `json:"total_duration,omitempty"`
	LoadDuration       int64     `json:"load_duration,omitempty"`
	PromptEvalCount    int       `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64     `json:"prompt_eval_duration,omitempty"`
	EvalCount          int       `json:"eval_count,omitempty"`
	EvalDuration       int64     `json:"eval_duration,omitempty"`

	// Error is set instead of Response when generation fails after the
	// 200 status was sent.
	Error string `json:"error,omitempty"`
}

// TokensPerSecond returns the generation rate reported by the server.
func (r *GenerateResponse) TokensPerSecond() float64 {
	if r.EvalDuration <= 0 {
		return 0
	}
	return float64(r.EvalCount) / time.Duration(r.EvalDuration).Seconds()
}

// ModelDetails contains detailed information about a model.
type ModelDetails struct {
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// ShowModelResponse is the response from the /api/show endpoint.
type ShowModelResponse struct {
	License    string       `json:"license"`
	Modelfile  string       `json:"modelfile"`
	Parameters string       `json:"parameters"`
	Template   string       `json:"template"`
	Details    ModelDetails `json:"details"`
}

// OllamaError is the body Ollama sends with a non-2xx status.
type OllamaError struct {
	Error string `json:"error"`
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamChunk is one decoded line of a streamed reply.
type StreamChunk struct {
	// Content is the response fragment carried by this line.
	Content string

	Model string

	// Populated on the final line only.
	Done               bool
	DoneReason         string
	TotalDuration      time.Duration
	LoadDuration       time.Duration
	PromptEvalDuration time.Duration
	EvalDuration       time.Duration
	PromptTokens       int
	CompletionTokens   int
}

func chunkFromResponse(r *GenerateResponse) StreamChunk {
	c := StreamChunk{
		Content: r.Response,
		Model:   r.Model,
		Done:    r.Done,
	}
	if r.Done {
		c.DoneReason = r.DoneReason
		c.TotalDuration = time.Duration(r.TotalDuration)
		c.LoadDuration = time.Duration(r.LoadDuration)
		c.PromptEvalDuration = time.Duration(r.PromptEvalDuration)
		c.EvalDuration = time.Duration(r.EvalDuration)
		c.PromptTokens = r.PromptEvalCount
		c.CompletionTokens = r.EvalCount
	}
	return c
}
