// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the chat transcript to a flat text file.
//
// Each entry becomes one "role: content" line with no escaping, so multi-line
// replies span several physical lines. The default file name is
// chat_history_YYYYMMDD_HHMMSS.txt in the session's current path.
package export
