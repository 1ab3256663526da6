// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the role as written to saved transcripts.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is one turn of the conversation.
type Entry struct {
	Role    Role
	Content string

	// Failed marks an assistant entry whose content is the transport
	// failure sentinel rather than a model reply. Not written to disk.
	Failed bool

	Timestamp time.Time
}

// NewUserEntry creates a user entry holding the raw input line.
func NewUserEntry(content string) Entry {
	return Entry{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// NewAssistantEntry creates an assistant entry.
func NewAssistantEntry(content string, failed bool) Entry {
	return Entry{Role: RoleAssistant, Content: content, Failed: failed, Timestamp: time.Now()}
}
