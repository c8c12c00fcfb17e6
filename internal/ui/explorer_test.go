// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/spnlab/internal/spn"
)

func testModel(t *testing.T) Model {
	t.Helper()
	s, err := spn.ParseSBox("E4D12FB83A6C5907")
	require.NoError(t, err)
	return NewModel(s)
}

func apply(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		got, ok := next.(Model)
		require.True(t, ok, "Update must return a ui.Model")
		m = got
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartsAtOrigin(t *testing.T) {
	m := testModel(t)

	assert.Equal(t, 0, m.row)
	assert.Equal(t, 0, m.col)
	assert.Contains(t, m.View(), "(inactive)")
}

func TestMovementAndClamping(t *testing.T) {
	m := testModel(t)

	m = apply(t, m, runes("j"), runes("j"), runes("j"), runes("l"), runes("l"))
	assert.Equal(t, 3, m.row)
	assert.Equal(t, 2, m.col)

	for i := 0; i < 30; i++ {
		m = apply(t, m, runes("k"), runes("h"))
	}
	assert.Equal(t, 0, m.row)
	assert.Equal(t, 0, m.col)

	for i := 0; i < 30; i++ {
		m = apply(t, m, runes("j"), runes("l"))
	}
	assert.Equal(t, spn.SBoxSize-1, m.row)
	assert.Equal(t, spn.SBoxSize-1, m.col)
}

func TestArrowKeysMatchVimKeys(t *testing.T) {
	vim := apply(t, testModel(t), runes("j"), runes("j"), runes("l"))
	arrows := apply(t, testModel(t),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight},
	)

	assert.Equal(t, vim.row, arrows.row)
	assert.Equal(t, vim.col, arrows.col)
}

func TestRowJumps(t *testing.T) {
	m := apply(t, testModel(t), runes("G"))
	assert.Equal(t, spn.SBoxSize-1, m.row)

	m = apply(t, m, runes("g"))
	assert.Equal(t, 0, m.row)
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		runes("q"),
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := testModel(t).Update(msg)
		require.NotNil(t, cmd, "%v should quit", msg)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestFooterForStrongApproximation(t *testing.T) {
	m := testModel(t)
	m = apply(t, m, runes("j")) // input mask 1
	for i := 0; i < 7; i++ {    // output mask 7
		m = apply(t, m, runes("l"))
	}

	view := m.View()
	assert.Contains(t, view, "in 1 out 7")
	assert.Contains(t, view, "bias +0.375000")
	assert.Contains(t, view, "holds 14/16")
	assert.Contains(t, view, "prob 0.875000")
	assert.Contains(t, view, "two-sided, listed")
	assert.Contains(t, view, "+6", "the LAT cell shows count-8")
}

func TestFooterForOneSidedPair(t *testing.T) {
	m := apply(t, testModel(t), runes("l")) // in 0, out 1

	view := m.View()
	assert.Contains(t, view, "in 0 out 1")
	assert.Contains(t, view, "bias +0.000000")
	assert.Contains(t, view, "holds 8/16")
	assert.Contains(t, view, "one-sided, dropped from the nonzero listing")
}

func TestFooterForBalancedTwoSidedPair(t *testing.T) {
	m := apply(t, testModel(t), runes("j"), runes("l")) // in 1, out 1

	view := m.View()
	assert.Contains(t, view, "in 1 out 1")
	assert.Contains(t, view, "two-sided, balanced")
	assert.NotContains(t, view, "two-sided, listed")
}

func TestViewLayout(t *testing.T) {
	view := testModel(t).View()

	assert.Contains(t, view, "Linear approximation table")
	assert.Contains(t, view, "S-box E4D12FB83A6C5907")
	assert.Contains(t, view, "cells: count-8")

	// Header plus 16 table rows are always present.
	lines := strings.Split(view, "\n")
	require.GreaterOrEqual(t, len(lines), spn.SBoxSize+4)
}

func TestWindowSizeTruncatesFooter(t *testing.T) {
	m := apply(t, testModel(t), tea.WindowSizeMsg{Width: 40, Height: 24})

	view := m.View()
	assert.Contains(t, view, "in 0 out 0")
	assert.Contains(t, view, "...", "footer lines are truncated to the window width")
}
