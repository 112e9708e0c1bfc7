// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package menu

// Point is a position in viewport coordinates.
type Point struct {
	X int
	Y int
}

// State is the menu's interaction state machine:
//
//	Closed → Open(items, anchor) → SubmenuOpen(path)* → Closed
//
// The expanded-submenu path stores one index per open level, which
// structurally enforces "at most one expanded submenu per level".
// State is owned by a single UI goroutine and needs no locking.
type State struct {
	visible bool
	anchor  Point
	items   []Node
	path    []int
}

// NewState returns a closed menu state.
func NewState() *State {
	return &State{}
}

// Show opens the menu with the given item tree anchored at (x, y),
// clearing any previously expanded submenu. Showing an empty item list
// is a no-op: a visible menu always has a non-empty item list and an
// anchor.
func (s *State) Show(x, y int, items []Node) {
	if len(items) == 0 {
		return
	}
	s.visible = true
	s.anchor = Point{X: x, Y: y}
	s.items = items
	s.path = s.path[:0]
}

// Hide closes the menu unconditionally, from any state.
func (s *State) Hide() {
	s.visible = false
	s.items = nil
	s.path = s.path[:0]
}

// Visible reports whether the menu is open.
func (s *State) Visible() bool {
	return s.visible
}

// Anchor returns the position Show was called with.
func (s *State) Anchor() Point {
	return s.anchor
}

// Items returns the top-level item list.
func (s *State) Items() []Node {
	return s.items
}

// Depth returns the number of open levels: 1 for the root menu plus
// one per expanded submenu. Zero when closed.
func (s *State) Depth() int {
	if !s.visible {
		return 0
	}
	return 1 + len(s.path)
}

// ItemsAt returns the item list shown at the given level (0 is the
// root), or nil when that level is not open.
func (s *State) ItemsAt(level int) []Node {
	if !s.visible || level < 0 || level > len(s.path) {
		return nil
	}
	items := s.items
	for _, index := range s.path[:level] {
		items = items[index].Submenu
	}
	return items
}

// ActiveAt returns the expanded submenu index at the given level, or
// -1 when no submenu is expanded there.
func (s *State) ActiveAt(level int) int {
	if !s.visible || level < 0 || level >= len(s.path) {
		return -1
	}
	return s.path[level]
}

// Hover reacts to the pointer entering an item. Hovering an item that
// owns a submenu expands it; hovering a sibling collapses the previous
// expansion at that level (and everything deeper) first, so each level
// has at most one expanded submenu. Hovering a plain leaf collapses
// any expansion at that level. Disabled items and separators never
// transition state.
func (s *State) Hover(level, index int) {
	items := s.ItemsAt(level)
	if index < 0 || index >= len(items) {
		return
	}
	item := items[index]
	if item.Disabled || item.IsSeparator() {
		return
	}
	// Collapse deeper levels before (possibly) expanding here.
	s.path = s.path[:level]
	if item.HasSubmenu() {
		s.path = append(s.path, index)
	}
}

// Collapse retracts the deepest expanded submenu, if any. The root
// level stays open; closing it entirely is Hide's job.
func (s *State) Collapse() {
	if len(s.path) > 0 {
		s.path = s.path[:len(s.path)-1]
	}
}

// Select reacts to the pointer activating an item. Submenu owners
// expand exactly as Hover (constrained inputs open cascades by
// clicking). A leaf with an action runs it, then closes the menu —
// the menu always closes on leaf selection, and the action's error is
// returned for independent reporting. Disabled items and separators do
// nothing. The closed return is true when the selection closed the
// menu.
func (s *State) Select(level, index int) (closed bool, err error) {
	items := s.ItemsAt(level)
	if index < 0 || index >= len(items) {
		return false, nil
	}
	item := items[index]
	if item.Disabled || item.IsSeparator() {
		return false, nil
	}
	if item.HasSubmenu() {
		s.Hover(level, index)
		return false, nil
	}
	if item.Action != nil {
		err = item.Action()
	}
	s.Hide()
	return true, err
}
