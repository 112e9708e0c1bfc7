// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// submenuMarker is rendered at the right edge of items that cascade.
const submenuMarker = "▸"

// Pane is one rendered menu level: an item list placed at an origin in
// viewport coordinates. The pane owns hit-testing for the pointer
// (Contains, ItemAt) and produces its overlay lines for splicing into
// the underlying view. Each open level of a cascade is its own Pane.
type Pane struct {
	Items  []Node
	Cursor int   // Highlighted item index, -1 for none.
	Origin Point // Top-left corner in viewport coordinates.
}

// Width returns the total visible width of the rendered pane in
// columns. This matches the width used by Render and is needed for
// both mouse hit-testing and cascade placement.
func (pane *Pane) Width() int {
	maxLabelWidth := 0
	maxTrailerWidth := 0
	for _, item := range pane.Items {
		if item.IsSeparator() {
			continue
		}
		if labelWidth := ansi.StringWidth(item.Label); labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
		if trailerWidth := ansi.StringWidth(item.trailer()); trailerWidth > maxTrailerWidth {
			maxTrailerWidth = trailerWidth
		}
	}
	// Layout: " > LABEL  TRAILER " — 3 chars prefix (space + marker +
	// space), label, 2-char gap before the trailer, 1 char right pad.
	width := 3 + maxLabelWidth + 1
	if maxTrailerWidth > 0 {
		width += 2 + maxTrailerWidth
	}
	return width
}

// Height returns the pane's height in rows, one per node.
func (pane *Pane) Height() int {
	return len(pane.Items)
}

// Rect returns the pane's placed bounding rectangle.
func (pane *Pane) Rect() Rect {
	return Rect{X: pane.Origin.X, Y: pane.Origin.Y, Width: pane.Width(), Height: pane.Height()}
}

// Contains reports whether the viewport coordinate (x, y) falls within
// the pane's bounding rectangle.
func (pane *Pane) Contains(x, y int) bool {
	return pane.Rect().Contains(x, y)
}

// ItemAt returns the item index at the given viewport Y coordinate, or
// -1 if the coordinate is outside the pane's vertical range.
func (pane *Pane) ItemAt(y int) int {
	index := y - pane.Origin.Y
	if index < 0 || index >= len(pane.Items) {
		return -1
	}
	return index
}

// ItemTop returns the absolute viewport Y of an item's top edge, used
// as the vertical anchor for that item's submenu.
func (pane *Pane) ItemTop(index int) int {
	return pane.Origin.Y + index
}

// trailer is the right-aligned portion of an item row: the shortcut
// hint and/or the cascade marker.
func (n Node) trailer() string {
	switch {
	case n.HasSubmenu() && n.Shortcut != "":
		return n.Shortcut + " " + submenuMarker
	case n.HasSubmenu():
		return submenuMarker
	default:
		return n.Shortcut
	}
}

// Render produces the pane's lines for overlay splicing. Every line
// has the same visible width and a solid background so the pane reads
// as a block floating over the underlying content. The cursor row uses
// a contrasting background; disabled rows render faint.
func (pane *Pane) Render(theme Theme) []string {
	totalWidth := pane.Width()
	innerWidth := totalWidth - 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.MenuBackground).
		Foreground(theme.NormalText)
	disabledStyle := lipgloss.NewStyle().
		Background(theme.MenuBackground).
		Foreground(theme.DisabledText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	separatorStyle := lipgloss.NewStyle().
		Background(theme.MenuBackground).
		Foreground(theme.SeparatorColor)

	var lines []string
	for index, item := range pane.Items {
		if item.IsSeparator() {
			lines = append(lines, separatorStyle.Render(strings.Repeat("─", totalWidth)))
			continue
		}

		marker := " "
		if index == pane.Cursor {
			marker = ">"
		}
		content := marker + " " + item.Label

		trailer := item.trailer()
		gap := innerWidth - ansi.StringWidth(content) - ansi.StringWidth(trailer)
		if gap < 0 {
			gap = 0
		}
		row := content + strings.Repeat(" ", gap) + trailer

		style := backgroundStyle
		switch {
		case item.Disabled:
			style = disabledStyle
		case index == pane.Cursor:
			style = selectedStyle
		}
		styledLine := style.Render(" " + row + " ")

		// Ensure consistent visible width across all lines.
		if lineWidth := ansi.StringWidth(styledLine); lineWidth < totalWidth {
			styledLine += style.Render(strings.Repeat(" ", totalWidth-lineWidth))
		}
		lines = append(lines, styledLine)
	}
	return lines
}
