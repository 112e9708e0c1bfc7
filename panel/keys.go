// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the scene panel.
type KeyMap struct {
	// Tree navigation.
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding

	// Scene operations on the cursor row.
	Select           key.Binding // Select the node in the host.
	ToggleVisibility key.Binding
	ContextMenu      key.Binding // Open the context menu at the cursor row.

	// Menu navigation while the context menu is open.
	MenuConfirm  key.Binding
	MenuExpand   key.Binding
	MenuCollapse key.Binding
	MenuDismiss  key.Binding

	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	ToggleVisibility: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "show/hide"),
	),
	ContextMenu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menu"),
	),
	MenuConfirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run"),
	),
	MenuExpand: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("→", "expand"),
	),
	MenuCollapse: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←", "collapse"),
	),
	MenuDismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "dismiss"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
