// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/scenepanel/scenepanel/hostlink"
	"github.com/scenepanel/scenepanel/menu"
)

// visibilityMarker prefixes each tree row.
const (
	markerVisible = "●"
	markerHidden  = "○"
)

// View implements tea.Model: header, tree window, status line, help
// line, with any open menu panes spliced on top.
func (model Model) View() string {
	if !model.ready {
		return "initializing scene panel..."
	}

	lines := make([]string, 0, model.height)
	lines = append(lines, model.headerLine())
	lines = append(lines, model.treeLines()...)
	lines = append(lines, model.statusLine(), model.helpLine())

	view := strings.Join(lines, "\n")
	for _, pane := range model.panes {
		view = menu.SpliceOverlay(view, pane.Render(model.theme), pane.Origin.X, pane.Origin.Y)
	}
	return view
}

// headerLine shows the title and the transport the bridge resolved to.
// An offline bridge is the panel's degraded read-only state and gets
// the error accent.
func (model Model) headerLine() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render(" " + model.title)

	capability := model.bridge.Capability()
	badgeColor := model.theme.FaintText
	if capability == hostlink.CapabilityUnavailable {
		badgeColor = model.theme.StatusError
	}
	badge := lipgloss.NewStyle().
		Foreground(badgeColor).
		Render(capability.String())

	gap := model.width - ansi.StringWidth(title) - ansi.StringWidth(badge) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + badge
}

// treeLines renders the visible window of the flattened hierarchy,
// padded to the content height.
func (model Model) treeLines() []string {
	height := model.contentHeight()
	if height < 0 {
		height = 0
	}
	lines := make([]string, 0, height)
	for offset := 0; offset < height; offset++ {
		index := model.scrollOffset + offset
		if index >= len(model.rows) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, model.renderRow(index))
	}
	return lines
}

func (model Model) renderRow(index int) string {
	row := model.rows[index]
	node := row.Node

	marker := markerVisible
	if !node.Visible {
		marker = markerHidden
	}
	selected := " "
	if node.Name == model.selected {
		selected = "▸"
	}

	nameColor := model.theme.NodeTypeColor(node.Type)
	if !node.Visible {
		nameColor = model.theme.HiddenText
	}

	line := selected + strings.Repeat("  ", row.Depth) + marker + " " +
		lipgloss.NewStyle().Foreground(nameColor).Render(node.Name)
	if node.Type != "" {
		line += lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" (" + node.Type + ")")
	}

	if index == model.cursor {
		pad := model.width - ansi.StringWidth(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Render(line)
	}
	return line
}

func (model Model) statusLine() string {
	if model.status == "" {
		return ""
	}
	color := model.theme.StatusOK
	if model.statusIsError {
		color = model.theme.StatusError
	}
	return lipgloss.NewStyle().Foreground(color).Render(" " + model.status)
}

func (model Model) helpLine() string {
	bindings := []string{
		"j/k move",
		model.keys.Select.Help().Key + " " + model.keys.Select.Help().Desc,
		model.keys.ToggleVisibility.Help().Key + " " + model.keys.ToggleVisibility.Help().Desc,
		model.keys.ContextMenu.Help().Key + " " + model.keys.ContextMenu.Help().Desc,
		model.keys.Refresh.Help().Key + " " + model.keys.Refresh.Help().Desc,
		model.keys.Quit.Help().Key + " " + model.keys.Quit.Help().Desc,
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render(" " + strings.Join(bindings, "  "))
}
