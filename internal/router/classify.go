// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"strings"
)

// ============================================================================
// INSTRUCTIONS
// ============================================================================

// Instruction identifies one of the two fixed system instructions.
type Instruction int

const (
	InstructionGeneral Instruction = iota
	InstructionCode
)

// String returns a short name used in logs.
func (i Instruction) String() string {
	if i == InstructionCode {
		return "code"
	}
	return "general"
}

// Text returns the instruction prepended to the prompt.
func (i Instruction) Text() string {
	if i == InstructionCode {
		return CodeInstruction
	}
	return GeneralInstruction
}

const (
	// CodeInstruction asks for direct code changes in fenced blocks.
	CodeInstruction = "You are a code-focused AI assistant. When given code, provide direct code improvements " +
		"rather than suggestions. Format all code responses in markdown code blocks with the " +
		"appropriate language identifier. Show only the relevant code sections that need changes."

	// GeneralInstruction asks for explanation of the loaded file.
	GeneralInstruction = "You are an AI assistant analyzing files and providing information. " +
		"Give clear, concise explanations and analysis based on the file content."
)

// CodeKeywords select InstructionCode when any appears in a prompt.
var CodeKeywords = []string{"fix", "improve", "update", "change", "modify", "code", "error", "bug"}

// ============================================================================
// CLASSIFICATION FUNCTIONS
// ============================================================================

// Classify picks the instruction for prompt. Matching is a plain
// case-insensitive substring test, not a word match.
func Classify(prompt string) Instruction {
	if MatchedKeyword(prompt) != "" {
		return InstructionCode
	}
	return InstructionGeneral
}

// MatchedKeyword returns the first keyword found in prompt, or "".
func MatchedKeyword(prompt string) string {
	p := strings.ToLower(prompt)
	for _, kw := range CodeKeywords {
		if strings.Contains(p, kw) {
			return kw
		}
	}
	return ""
}

// BuildPrompt composes the payload sent to the model. The context section is
// always present, empty when no file has been loaded.
func BuildPrompt(instruction Instruction, context, prompt string) string {
	var b strings.Builder
	b.Grow(len(context) + len(prompt) + 512)
	b.WriteString(instruction.Text())
	b.WriteString("\n\nContext (loaded file):\n")
	b.WriteString(context)
	b.WriteString("\n\nUser Question: ")
	b.WriteString(prompt)
	return b.String()
}
