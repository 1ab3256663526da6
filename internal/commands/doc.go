// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands parses chat-loop input lines and completes paths.
//
// Parse is pure: it maps a line to a Command and never touches the
// filesystem. Keywords are matched case-insensitively in a fixed order and
// always win over chat, even with nothing after them:
//
//	quit, exit, save, clear, ls, cd, load, mkdir, nano, npm, npx
//
// A blank line is KindEmpty; anything else is KindChat.
//
// Completer offers file and directory names for lines that start with
// "cd ", "load " or "nano ".
package commands
