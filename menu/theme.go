// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package menu

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the menu overlay and the panel
// chrome around it. All colors are lipgloss ANSI 256-color codes for
// broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText   lipgloss.Color
	FaintText    lipgloss.Color
	DisabledText lipgloss.Color

	// Highlighted (hovered/cursor) menu row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Menu pane surface.
	MenuBackground lipgloss.Color
	SeparatorColor lipgloss.Color
	ShortcutText   lipgloss.Color

	// Panel chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Scene node kinds in the tree pane.
	NodeTransform lipgloss.Color
	NodeShape     lipgloss.Color
	NodeCamera    lipgloss.Color

	// Status line accents.
	StatusOK    lipgloss.Color
	StatusError lipgloss.Color

	// Hidden (visibility off) tree rows.
	HiddenText lipgloss.Color
}

// NodeTypeColor returns the tree color for a scene node type string.
// Unknown types render as normal text.
func (theme Theme) NodeTypeColor(nodeType string) lipgloss.Color {
	switch nodeType {
	case "transform":
		return theme.NodeTransform
	case "mesh", "shape":
		return theme.NodeShape
	case "camera":
		return theme.NodeCamera
	default:
		return theme.NormalText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme, designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText:   lipgloss.Color("252"),
	FaintText:    lipgloss.Color("245"),
	DisabledText: lipgloss.Color("240"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	MenuBackground: lipgloss.Color("237"),
	SeparatorColor: lipgloss.Color("243"),
	ShortcutText:   lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	NodeTransform: lipgloss.Color("114"), // green
	NodeShape:     lipgloss.Color("75"),  // blue
	NodeCamera:    lipgloss.Color("220"), // amber

	StatusOK:    lipgloss.Color("114"),
	StatusError: lipgloss.Color("196"),

	HiddenText: lipgloss.Color("240"),
}
