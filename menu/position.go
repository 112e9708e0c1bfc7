// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package menu

// Size is the rendered (or estimated) extent of a menu pane.
type Size struct {
	Width  int
	Height int
}

// Rect is a placed pane: origin plus extent, in viewport coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the viewport coordinate falls inside the
// rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Viewport is the visible window extent. Callers read it fresh for
// every positioning computation; it is never cached across resizes.
type Viewport struct {
	Width  int
	Height int
}

// ClampToViewport positions a root menu. The requested anchor is the
// pointer position; each axis is clamped independently so the pane's
// far edge stays inside the viewport, and the origin never goes
// negative (a pane larger than the viewport pins to 0).
func ClampToViewport(anchor Point, size Size, viewport Viewport) Point {
	x := anchor.X
	if x+size.Width > viewport.Width {
		x = viewport.Width - size.Width
	}
	if x < 0 {
		x = 0
	}
	y := anchor.Y
	if y+size.Height > viewport.Height {
		y = viewport.Height - size.Height
	}
	if y < 0 {
		y = 0
	}
	return Point{X: x, Y: y}
}

// PlaceSubmenu positions a submenu pane relative to its parent pane.
// Default placement is off the parent's right edge, top-aligned with
// the hovered item (itemTop is that item's absolute Y). The horizontal
// anchor is the parent pane's edge, not the item's, so nested levels
// cascade consistently rightward. On right overflow the pane flips to
// the parent's left edge; on bottom overflow it shifts up just enough
// to fit, never past the top edge. The size is an estimate — actual
// pane extent is not known before first paint, and menus are narrow
// and shallow enough that the estimate decides placement correctly.
func PlaceSubmenu(parent Rect, itemTop int, size Size, viewport Viewport) Point {
	x := parent.X + parent.Width
	if x+size.Width > viewport.Width {
		x = parent.X - size.Width
	}
	if x < 0 {
		x = 0
	}
	y := itemTop
	if y+size.Height > viewport.Height {
		y = viewport.Height - size.Height
	}
	if y < 0 {
		y = 0
	}
	return Point{X: x, Y: y}
}
