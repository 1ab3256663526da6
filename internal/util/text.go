// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Preview flattens s onto one line and truncates it to at most width
// terminal columns, appending "..." when something was cut.
// Wide (CJK) characters count as two columns.
func Preview(s string, width int) string {
	if width <= 0 {
		return ""
	}
	flat := strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(flat, width, "...")
}
