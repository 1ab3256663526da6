// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// =============================================================================
// COMMAND
// =============================================================================

// Kind identifies what an input line asks for.
type Kind int

const (
	KindEmpty Kind = iota
	KindQuit
	KindSave
	KindClear
	KindList
	KindChangeDir
	KindLoad
	KindMakeDir
	KindEdit
	KindNpm
	KindNpx
	KindChat
)

var kindNames = map[Kind]string{
	KindEmpty:     "empty",
	KindQuit:      "quit",
	KindSave:      "save",
	KindClear:     "clear",
	KindList:      "ls",
	KindChangeDir: "cd",
	KindLoad:      "load",
	KindMakeDir:   "mkdir",
	KindEdit:      "nano",
	KindNpm:       "npm",
	KindNpx:       "npx",
	KindChat:      "chat",
}

// String returns the keyword for the kind, or "chat"/"empty".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a parsed input line.
type Command struct {
	Kind Kind
	// Arg is the trimmed text after the keyword, in its original case.
	// For KindChat it is the whole trimmed line.
	Arg string
}

// =============================================================================
// PARSER
// =============================================================================

// rule matches one keyword. exact rules accept no argument.
type rule struct {
	keyword string
	kind    Kind
	exact   bool
}

// rules are tried in order; the first match wins.
var rules = []rule{
	{"quit", KindQuit, true},
	{"exit", KindQuit, true},
	{"save", KindSave, false},
	{"clear", KindClear, true},
	{"ls", KindList, false},
	{"cd", KindChangeDir, false},
	{"load", KindLoad, false},
	{"mkdir", KindMakeDir, false},
	{"nano", KindEdit, false},
	{"npm", KindNpm, false},
	{"npx", KindNpx, false},
}

// Parse classifies one input line.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindEmpty}
	}

	for _, r := range rules {
		arg, ok := matchKeyword(line, r.keyword)
		if !ok || (r.exact && arg != "") {
			continue
		}
		return Command{Kind: r.kind, Arg: arg}
	}

	return Command{Kind: KindChat, Arg: line}
}

// matchKeyword reports whether line is keyword alone or keyword followed by
// whitespace, ignoring case, and returns the trimmed remainder.
func matchKeyword(line, keyword string) (string, bool) {
	if len(line) < len(keyword) || !strings.EqualFold(line[:len(keyword)], keyword) {
		return "", false
	}
	rest := line[len(keyword):]
	if rest == "" {
		return "", true
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
