// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package menu

// Action is the operation bound to a leaf item. Actions must not
// block: long-running work (remote calls in particular) is dispatched
// in the background by the action itself, with the result reported
// through whatever channel the caller wired up.
type Action func() error

// Node is one entry in a menu level: either an item or a separator.
// Items with a non-empty Submenu cascade instead of running an action.
type Node struct {
	// Label is the display text. Empty for separators.
	Label string

	// Shortcut is an optional hint rendered right-aligned (e.g. "F").
	// Display only; key handling belongs to the embedding UI.
	Shortcut string

	// Disabled items render faint and never run actions or expand
	// submenus.
	Disabled bool

	// Action runs when the item is selected. Ignored when Submenu is
	// non-empty.
	Action Action

	// Submenu is the nested level this item expands to.
	Submenu []Node

	separator bool
}

// Separator returns a separator marker node.
func Separator() Node {
	return Node{separator: true}
}

// IsSeparator reports whether the node is a separator marker.
func (n Node) IsSeparator() bool {
	return n.separator
}

// HasSubmenu reports whether the node expands to a nested level.
func (n Node) HasSubmenu() bool {
	return len(n.Submenu) > 0
}
