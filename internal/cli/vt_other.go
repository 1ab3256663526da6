// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package cli

// enableVirtualTerminal is a no-op: Unix terminals interpret ANSI sequences
// natively.
func enableVirtualTerminal() bool {
	return true
}
