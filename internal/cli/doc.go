// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli runs the interactive chat loop.
//
// The loop reads a line through liner (history, editing and path completion),
// parses it with commands.Parse and hands the result to Dispatcher.Execute.
// Dispatcher owns every side effect: file helpers, the unsafe shell, the
// transcript export and chat turns through router.Responder.
//
// # Exit paths
//
//   - "quit" or "exit"
//   - Ctrl+C at the prompt (as a key or as SIGINT), or Ctrl+D
//   - Ctrl+C while a reply is being generated (the request is cancelled first)
//
// All of them end at the same place: if anything is unsaved, the user is asked
// once whether to save the transcript, then the farewell line is printed.
package cli
