// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// keys.go - Keyboard bindings for the approximation table explorer.

package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keyboard bindings for the explorer.
// Each binding supports both arrow keys and vim-like shortcuts.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	FirstRow key.Binding
	LastRow  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings for the explorer.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous input mask"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next input mask"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "previous output mask"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next output mask"),
		),
		FirstRow: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first row"),
		),
		LastRow: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last row"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// HelpLine renders the one-line key summary shown under the table.
func (k KeyMap) HelpLine() string {
	items := []key.Binding{k.FirstRow, k.LastRow, k.Quit}
	line := "arrows/hjkl move"
	for _, b := range items {
		h := b.Help()
		line += "   " + h.Key + " " + h.Desc
	}
	return line
}
