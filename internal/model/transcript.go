// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Transcript is the in-memory conversation record. Entries are only ever
// appended; nothing is removed for the lifetime of a session.
type Transcript struct {
	entries []Entry
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{entries: make([]Entry, 0, 16)}
}

// Append adds e at the end.
func (t *Transcript) Append(e Entry) {
	t.entries = append(t.entries, e)
}

// AddExchange records a user line followed by the assistant's answer.
func (t *Transcript) AddExchange(prompt, response string, failed bool) {
	t.Append(NewUserEntry(prompt))
	t.Append(NewAssistantEntry(response, failed))
}

// Entries returns a copy of the entries in insertion order.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// IsEmpty reports whether nothing has been recorded yet.
func (t *Transcript) IsEmpty() bool {
	return len(t.entries) == 0
}

// Failures counts assistant entries that carry the failure sentinel.
func (t *Transcript) Failures() int {
	n := 0
	for _, e := range t.entries {
		if e.Failed {
			n++
		}
	}
	return n
}
