// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router turns a chat line into a generate request and a reply.
//
// The instruction sent ahead of the user's text is picked by a keyword scan:
// any of fix, improve, update, change, modify, code, error or bug (matched
// case-insensitively anywhere in the line, so "prefix" counts) selects the
// code-focused instruction; everything else gets the file-analysis one.
//
// # Key Types
//
//   - Instruction: which system instruction a prompt selected
//   - Responder: sends the composed prompt through an ollama client and
//     falls back to FailureSentinel on any transport failure
package router
