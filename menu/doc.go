// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

// Package menu implements a cascading, viewport-aware context menu for
// terminal UIs.
//
// The menu is a tree of [Node] values (items and separators; items may
// carry nested submenus to unbounded depth). [State] owns the
// open/closed lifecycle: anchor position, the current item tree, and
// the path of expanded submenus — at most one expanded submenu per
// level. Selection of a leaf runs its bound action and always closes
// the menu; the action's own failure is reported to the caller, never
// allowed to block the close.
//
// Positioning is pure geometry over a [Viewport] read fresh for each
// computation: the root menu is clamped so it never exceeds the
// viewport on either axis, and submenus cascade off the parent pane's
// right edge, flipping left on horizontal overflow and shifting up on
// vertical overflow.
//
// [Pane] renders one open menu level as an overlay block (lipgloss
// styling, ANSI-aware widths) and answers pointer hit tests, in the
// same shape as a dropdown overlay. [SpliceOverlay] places rendered
// panes into an existing view.
package menu
