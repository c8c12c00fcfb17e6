// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// width.go - Display-width aware string shaping for terminal tables

package util

import (
	"github.com/mattn/go-runewidth"
)

// StringWidth returns the terminal display width of a string.
// Double-width characters (CJK) count as two columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth truncates a string to at most maxWidth display
// columns, appending "..." when something was cut. Widths of three or
// less skip the ellipsis since it would swallow the whole budget.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads a string with spaces to the given display width.
// Strings already at or past the width come back unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
