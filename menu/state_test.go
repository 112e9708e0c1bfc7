// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"errors"
	"testing"
)

func testItems(selected *string) []Node {
	record := func(name string) Action {
		return func() error {
			*selected = name
			return nil
		}
	}
	return []Node{
		{Label: "Select", Action: record("select")},
		{Label: "Display", Submenu: []Node{
			{Label: "Isolate", Action: record("isolate")},
			{Label: "Shapes", Submenu: []Node{
				{Label: "Show Shapes", Action: record("show-shapes")},
			}},
		}},
		Separator(),
		{Label: "Show", Action: record("show")},
		{Label: "Hide", Disabled: true, Action: record("hide")},
		{Label: "Visibility", Submenu: []Node{
			{Label: "On", Action: record("on")},
			{Label: "Off", Action: record("off")},
		}},
	}
}

func TestShowAndHide(t *testing.T) {
	var selected string
	state := NewState()

	if state.Visible() || state.Depth() != 0 {
		t.Fatal("new state should be closed")
	}

	state.Show(10, 5, testItems(&selected))
	if !state.Visible() {
		t.Fatal("Show did not open the menu")
	}
	if anchor := state.Anchor(); anchor.X != 10 || anchor.Y != 5 {
		t.Fatalf("anchor = %+v, want (10,5)", anchor)
	}
	if state.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", state.Depth())
	}

	state.Hide()
	if state.Visible() || state.ItemsAt(0) != nil {
		t.Fatal("Hide did not close the menu")
	}
}

func TestShowEmptyItemsStaysClosed(t *testing.T) {
	state := NewState()
	state.Show(3, 3, nil)
	if state.Visible() {
		t.Fatal("menu opened with an empty item list")
	}
}

func TestHoverExpandsOneSubmenuPerLevel(t *testing.T) {
	var selected string
	state := NewState()
	state.Show(0, 0, testItems(&selected))

	// Hover submenu A ("Display", index 1).
	state.Hover(0, 1)
	if state.ActiveAt(0) != 1 || state.Depth() != 2 {
		t.Fatalf("after hover A: active %d depth %d", state.ActiveAt(0), state.Depth())
	}

	// Hover submenu B ("Visibility", index 5) at the same level: A
	// closes, B opens, at most one active index remains.
	state.Hover(0, 5)
	if state.ActiveAt(0) != 5 {
		t.Fatalf("after hover B: active = %d, want 5", state.ActiveAt(0))
	}
	if state.Depth() != 2 {
		t.Fatalf("after hover B: depth = %d, want 2", state.Depth())
	}

	// Hovering a plain leaf collapses the expansion at that level.
	state.Hover(0, 0)
	if state.ActiveAt(0) != -1 || state.Depth() != 1 {
		t.Fatalf("after hover leaf: active %d depth %d", state.ActiveAt(0), state.Depth())
	}
}

func TestHoverNestedCascade(t *testing.T) {
	var selected string
	state := NewState()
	state.Show(0, 0, testItems(&selected))

	state.Hover(0, 1) // Display
	state.Hover(1, 1) // Shapes
	if state.Depth() != 3 {
		t.Fatalf("depth = %d, want 3", state.Depth())
	}
	if items := state.ItemsAt(2); len(items) != 1 || items[0].Label != "Show Shapes" {
		t.Fatalf("level 2 items = %v", items)
	}

	// Hovering a level-1 leaf collapses level 2.
	state.Hover(1, 0)
	if state.Depth() != 2 {
		t.Fatalf("depth after collapse = %d, want 2", state.Depth())
	}
}

func TestCollapseRetractsOneLevel(t *testing.T) {
	var selected string
	state := NewState()
	state.Show(0, 0, testItems(&selected))

	state.Hover(0, 1) // Display
	state.Hover(1, 1) // Shapes
	state.Collapse()
	if state.Depth() != 2 {
		t.Fatalf("depth after collapse = %d, want 2", state.Depth())
	}

	// Collapsing with no expansion leaves the root open.
	state.Collapse()
	state.Collapse()
	if state.Depth() != 1 || !state.Visible() {
		t.Fatalf("root closed by Collapse: depth=%d visible=%v", state.Depth(), state.Visible())
	}
}

func TestHoverDisabledAndSeparatorAreInert(t *testing.T) {
	var selected string
	state := NewState()
	state.Show(0, 0, testItems(&selected))
	state.Hover(0, 1)

	state.Hover(0, 4) // disabled "Hide"
	if state.ActiveAt(0) != 1 {
		t.Fatal("disabled item changed hover state")
	}
	state.Hover(0, 2) // separator
	if state.ActiveAt(0) != 1 {
		t.Fatal("separator changed hover state")
	}
}

func TestSelectLeafRunsActionAndCloses(t *testing.T) {
	var selected string
	state := NewState()
	state.Show(0, 0, testItems(&selected))
	state.Hover(0, 1)

	closed, err := state.Select(1, 0) // "Isolate"
	if !closed || err != nil {
		t.Fatalf("Select = %v, %v", closed, err)
	}
	if selected != "isolate" {
		t.Fatalf("action not invoked: selected = %q", selected)
	}
	if state.Visible() {
		t.Fatal("menu still open after leaf selection")
	}
}

func TestSelectClosesEvenWhenActionFails(t *testing.T) {
	actionError := errors.New("host rejected the call")
	state := NewState()
	state.Show(0, 0, []Node{
		{Label: "Delete", Action: func() error { return actionError }},
	})

	closed, err := state.Select(0, 0)
	if !closed {
		t.Fatal("menu did not close on failing action")
	}
	if !errors.Is(err, actionError) {
		t.Fatalf("err = %v, want action error", err)
	}
	if state.Visible() {
		t.Fatal("menu still open after failing action")
	}
}

func TestSelectSubmenuOwnerExpands(t *testing.T) {
	var selected string
	state := NewState()
	state.Show(0, 0, testItems(&selected))

	closed, err := state.Select(0, 1)
	if closed || err != nil {
		t.Fatalf("Select on submenu owner = %v, %v", closed, err)
	}
	if state.ActiveAt(0) != 1 {
		t.Fatal("submenu owner did not expand on select")
	}
}

func TestSelectDisabledIsInert(t *testing.T) {
	var selected string
	state := NewState()
	state.Show(0, 0, testItems(&selected))

	closed, err := state.Select(0, 4)
	if closed || err != nil || selected != "" {
		t.Fatalf("disabled select: closed=%v err=%v selected=%q", closed, err, selected)
	}
	if !state.Visible() {
		t.Fatal("disabled select closed the menu")
	}
}

func TestShowClearsPreviousExpansion(t *testing.T) {
	var selected string
	state := NewState()
	state.Show(0, 0, testItems(&selected))
	state.Hover(0, 1)

	state.Show(20, 20, testItems(&selected))
	if state.Depth() != 1 || state.ActiveAt(0) != -1 {
		t.Fatalf("re-show kept expansion: depth %d active %d", state.Depth(), state.ActiveAt(0))
	}
}
