// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width we'll use for wrapping
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	colorsMu       sync.Mutex
	colorsEnabled  bool
	colorsDecided  bool
	colorsDisabled bool // set from config
)

// ColorsEnabled reports whether styled output should be used. NO_COLOR and
// the config switch disable it; FORCE_COLOR enables it on non-TTY output.
func ColorsEnabled() bool {
	colorsMu.Lock()
	defer colorsMu.Unlock()

	if !colorsDecided {
		switch {
		case colorsDisabled || os.Getenv("NO_COLOR") != "":
			colorsEnabled = false
		case os.Getenv("FORCE_COLOR") != "":
			colorsEnabled = true
		default:
			colorsEnabled = IsStdoutTTY()
		}
		colorsDecided = true
	}
	return colorsEnabled
}

// DisableColors turns styling off for the rest of the process.
func DisableColors() {
	colorsMu.Lock()
	colorsDisabled = true
	colorsDecided = false
	colorsMu.Unlock()
}

// ForceColorsEnabled overrides detection. Tests only.
func ForceColorsEnabled(enabled bool) {
	colorsMu.Lock()
	colorsEnabled = enabled
	colorsDecided = true
	colorsMu.Unlock()
}

// GetColorProfile returns Ascii when colours are off, otherwise the profile
// termenv detects for stdout.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// SCREEN CONTROL
// =============================================================================

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	termenv.NewOutput(w).ClearScreen()
}
