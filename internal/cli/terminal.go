// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection and handling for the spnlab CLI.
//
// TTY detection decides whether output gets colors and whether the
// interactive surfaces (explorer, REPL) may start at all. Piped
// output stays plain so fixtures and scripts see stable bytes.

package cli

import (
	"os"
	"strings"
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

// IsStderrTTY returns true if stderr is a terminal.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const (
	// DefaultTerminalWidth is assumed when the real width is unknown.
	DefaultTerminalWidth = 80
	// MinTerminalWidth is the narrowest layout the tables degrade to.
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width, falling back
// to DefaultTerminalWidth when stdout is not a terminal.
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
// COLOR CONTROL
// =============================================================================

var (
	colorsOnce    sync.Once
	colorsEnabled bool
)

// ColorsEnabled reports whether styled output should be produced.
// NO_COLOR always wins, FORCE_COLOR overrides the TTY check, and the
// config's output.color setting is applied before this is consulted.
// Computed once; the environment does not change mid-run.
func ColorsEnabled() bool {
	colorsOnce.Do(func() {
		colorsEnabled = computeColorsEnabled()
	})
	return colorsEnabled
}

func computeColorsEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if v := os.Getenv("FORCE_COLOR"); v != "" && v != "0" {
		return true
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsStdoutTTY()
}

// ForceColorsEnabled overrides color detection for tests.
func ForceColorsEnabled(enabled bool) {
	colorsOnce.Do(func() {})
	colorsEnabled = enabled
}

// GetColorProfile returns the termenv profile matching the color
// decision: full detection when colors are on, pure ASCII otherwise.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// INTERACTIVITY
// =============================================================================

// CanPrompt reports whether interactive input is possible: both
// stdin and stdout must be terminals.
func CanPrompt() bool {
	return IsTTY() && IsStdoutTTY()
}

// RequiresTTY returns an error when an interactive surface is
// requested without a terminal attached.
func RequiresTTY(feature string) error {
	if !CanPrompt() {
		return NewUsageError(feature, "requires an interactive terminal")
	}
	return nil
}
