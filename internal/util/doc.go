// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the chat client.
//
//   - AtomicWriteFile: temp file + fsync + rename, used for transcripts
//   - Preview: single-line, display-width bounded rendering of long text for logs
package util
