// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		prompt string
		want   Instruction
	}{
		{"fix this", InstructionCode},
		{"Please FIX the loop", InstructionCode},
		{"Can you Improve readability?", InstructionCode},
		{"update the README", InstructionCode},
		{"what should I change", InstructionCode},
		{"modify line 3", InstructionCode},
		{"explain this code", InstructionCode},
		{"why the Error?", InstructionCode},
		{"is there a bug", InstructionCode},
		{"add a prefix", InstructionCode}, // substring, not word match
		{"summarize the file", InstructionGeneral},
		{"what does this do?", InstructionGeneral},
		{"", InstructionGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.prompt))
		})
	}
}

func TestMatchedKeyword(t *testing.T) {
	assert.Equal(t, "fix", MatchedKeyword("BUGFIX please"))
	assert.Equal(t, "", MatchedKeyword("hello there"))
}

func TestInstruction_Text(t *testing.T) {
	assert.True(t, strings.HasPrefix(InstructionCode.Text(), "You are a code-focused AI assistant."))
	assert.True(t, strings.HasSuffix(InstructionCode.Text(), "Show only the relevant code sections that need changes."))
	assert.Equal(t,
		"You are an AI assistant analyzing files and providing information. Give clear, concise explanations and analysis based on the file content.",
		InstructionGeneral.Text())
	assert.Equal(t, "code", InstructionCode.String())
	assert.Equal(t, "general", InstructionGeneral.String())
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt(InstructionGeneral, "package main", "what is this?")
	want := GeneralInstruction + "\n\nContext (loaded file):\npackage main\n\nUser Question: what is this?"
	assert.Equal(t, want, got)

	empty := BuildPrompt(InstructionCode, "", "fix it")
	assert.Equal(t, CodeInstruction+"\n\nContext (loaded file):\n\n\nUser Question: fix it", empty)
}
