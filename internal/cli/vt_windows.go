// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package cli

import (
	"golang.org/x/sys/windows"
)

// enableVirtualTerminal turns on ANSI escape handling for the console
// attached to stdout. It reports false when stdout is not a console or the
// mode cannot be changed.
func enableVirtualTerminal() bool {
	handle := windows.Handle(windows.Stdout)

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
