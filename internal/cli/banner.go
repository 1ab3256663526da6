// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/jeranaias/ollama-chat/internal/model"
)

// helpLines pairs each command usage with its description.
var helpLines = [][2]string{
	{"'save'", "to save the chat history"},
	{"'clear'", "to clear the screen"},
	{"'load <file_path>'", "to load content from a file"},
	{"'ls'", "to list current directory contents"},
	{"'cd <path>'", "to change directory"},
	{"'mkdir <dirname>'", "to create a directory"},
	{"'nano <filename>'", "to edit a file"},
	{"'npm <command>'", "to run npm commands"},
	{"'npx <command>'", "to run npx commands"},
}

// SeparatorWidth is the width of the banner separator.
const SeparatorWidth = 50

// PrintBanner prints the command overview shown once the session is ready.
func PrintBanner(w io.Writer, modelName string) {
	fmt.Fprintln(w, RenderConditional(TitleStyle, "Chat initialized with model: "+modelName))
	fmt.Fprintf(w, "\nType %s, %s, or press Ctrl+C to end the chat\n",
		RenderConditional(CommandStyle, "'quit'"),
		RenderConditional(CommandStyle, "'exit'"))
	for _, l := range helpLines {
		fmt.Fprintf(w, "Type %s %s\n", RenderConditional(CommandStyle, l[0]), l[1])
	}
	fmt.Fprint(w, "\n"+RenderSeparator(SeparatorWidth)+"\n\n")
}

// Prompt returns the input prompt for the current path.
func Prompt(currentPath string) string {
	return fmt.Sprintf("[%s] %s: ", currentPath, model.RoleUser.DisplayName())
}
