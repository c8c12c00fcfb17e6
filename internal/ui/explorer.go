// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the interactive linear approximation table explorer.
//
// The explorer renders the full 16x16 bias table of an S-box with a cell
// cursor. Cells show the classic LAT convention, count minus 8, so the
// signed bias of a cell is its value divided by 16; the footer spells out
// the selected approximation's exact bias, count and probability.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/spnlab/internal/linear"
	"github.com/jeranaias/spnlab/internal/spn"
	"github.com/jeranaias/spnlab/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	axisStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	axisHotStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	zeroCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model for the explorer.
type Model struct {
	keys  KeyMap
	table [spn.SBoxSize][spn.SBoxSize]linear.Entry
	sbox  string

	// Cursor: row selects the input mask, col the output mask.
	row int
	col int

	width  int
	height int
}

// NewModel builds an explorer over the full bias table of sbox.
func NewModel(sbox *spn.SBox) Model {
	return Model{
		keys:  DefaultKeyMap(),
		table: linear.BiasTable(sbox),
		sbox:  sbox.String(),
	}
}

// Explore runs the explorer in the alternate screen until the user quits.
func Explore(sbox *spn.SBox) error {
	p := tea.NewProgram(NewModel(sbox), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.row < spn.SBoxSize-1 {
			m.row++
		}
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < spn.SBoxSize-1 {
			m.col++
		}
	case key.Matches(msg, m.keys.FirstRow):
		m.row = 0
	case key.Matches(msg, m.keys.LastRow):
		m.row = spn.SBoxSize - 1
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Linear approximation table"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render("S-box " + m.sbox))
	b.WriteString("\n\n")

	// Column header: output masks.
	b.WriteString("    ")
	for out := 0; out < spn.SBoxSize; out++ {
		label := fmt.Sprintf("%4X", out)
		if out == m.col {
			b.WriteString(axisHotStyle.Render(label))
		} else {
			b.WriteString(axisStyle.Render(label))
		}
	}
	b.WriteString("\n")

	for in := 0; in < spn.SBoxSize; in++ {
		label := fmt.Sprintf("%3X ", in)
		if in == m.row {
			b.WriteString(axisHotStyle.Render(label))
		} else {
			b.WriteString(axisStyle.Render(label))
		}
		for out := 0; out < spn.SBoxSize; out++ {
			e := m.table[in][out]
			text := fmt.Sprintf("%4s", cellText(e))
			switch {
			case in == m.row && out == m.col:
				text = selectedStyle.Render(text)
			case e.Bias == 0:
				text = zeroCellStyle.Render(text)
			default:
				text = cellStyle.Render(text)
			}
			b.WriteString(text)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(detailStyle.Render(m.fit(m.detail())))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.fit("cells: count-8   " + m.keys.HelpLine())))
	b.WriteString("\n")

	return b.String()
}

// detail describes the selected approximation for the footer.
func (m Model) detail() string {
	e := m.table[m.row][m.col]

	var class string
	switch {
	case e.InMask == 0 && e.OutMask == 0:
		class = "inactive"
	case e.InMask == 0 || e.OutMask == 0:
		class = "one-sided, dropped from the nonzero listing"
	case e.Bias == 0:
		class = "two-sided, balanced"
	default:
		class = "two-sided, listed"
	}

	return fmt.Sprintf("in %X out %X  bias %s  holds %d/%d  prob %s  (%s)",
		e.InMask, e.OutMask,
		util.FormatBias(e.Bias),
		e.CountZero, spn.SBoxSize,
		util.FormatProbability(e.Probability),
		class)
}

// fit truncates a footer line to the terminal width once it is known.
func (m Model) fit(s string) string {
	if m.width > 0 {
		return util.TruncateWidth(s, m.width)
	}
	return s
}

// cellText renders one LAT cell; balanced cells show as a dot so the
// biased structure stands out.
func cellText(e linear.Entry) string {
	if e.Bias == 0 {
		return "."
	}
	return fmt.Sprintf("%+d", e.CountZero-spn.SBoxSize/2)
}
