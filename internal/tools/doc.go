// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools implements the shell-like commands of the chat loop.
//
// File helpers (files.go) resolve every relative path against the session's
// current path and never touch session state on failure:
//
//   - ListDirectory: directory report with human-readable sizes
//   - ChangeDirectory: move the session's current path
//   - CreateDirectory: recursive, idempotent mkdir
//   - LoadFileAsContext: replace the session's loaded context
//
// # Unsafe shell
//
// UnsafeShell (shell.go) launches the external editor and passes npm/npx
// lines to the OS shell verbatim. Anything typed after the keyword is run by
// the shell as-is, so metacharacters such as ";" or "&&" chain further
// commands. It is kept in its own type so nothing else in the program gains
// the ability to spawn processes by accident.
package tools
