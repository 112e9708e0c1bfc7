// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scenepanel/scenepanel/envelope"
	"github.com/scenepanel/scenepanel/hostlink"
	"github.com/scenepanel/scenepanel/menu"
)

// hostEventMsg wraps a host push for delivery through the bubbletea
// message loop.
type hostEventMsg struct {
	event   string
	payload any
}

// callResultMsg is sent when an asynchronous host call completes.
type callResultMsg struct {
	method string
	result any
	err    error
}

// statusFadeMsg clears the status notice after a delay.
type statusFadeMsg struct{}

// statusFadeDelay is how long operation outcomes stay in the status
// line.
const statusFadeDelay = 4 * time.Second

// eventBuffer sizes the internal message channel. Push handlers must
// never block the bridge, so a full buffer drops (and logs) rather
// than waiting.
const eventBuffer = 64

// Options configures presentation. The zero value gets usable
// defaults.
type Options struct {
	// Title is shown in the panel header. Default: "Scene".
	Title string

	// HideShortcuts suppresses shortcut hints in context menus.
	HideShortcuts bool

	// Theme overrides menu.DefaultTheme when non-zero.
	Theme menu.Theme

	// Logger receives diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// Model is the scene panel's bubbletea model.
type Model struct {
	bridge *hostlink.Bridge
	logger *slog.Logger
	theme  menu.Theme
	keys   KeyMap

	title         string
	showShortcuts bool

	width  int
	height int
	ready  bool

	// Flattened scene, cursor, and window scroll state.
	rows         []Row
	cursor       int
	scrollOffset int

	// selected is the host-side selection, as last reported by a
	// selection_changed push.
	selected string

	// Context menu state, the placed panes derived from it, and the
	// per-level keyboard cursor. menuTarget is the node the open menu
	// operates on; if a scene update removes it, the menu closes.
	menuState   *menu.State
	menuCursors []int
	panes       []menu.Pane
	menuTarget  string

	status        string
	statusIsError bool

	// events carries host pushes and call results into the Elm loop.
	events chan tea.Msg
}

// NewModel builds the panel over an attached bridge and subscribes to
// the host's push events. Subscriptions live for the life of the
// program.
func NewModel(bridge *hostlink.Bridge, options Options) Model {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	theme := options.Theme
	if theme == (menu.Theme{}) {
		theme = menu.DefaultTheme
	}
	title := options.Title
	if title == "" {
		title = "Scene"
	}

	model := Model{
		bridge:        bridge,
		logger:        logger,
		theme:         theme,
		keys:          DefaultKeyMap,
		title:         title,
		showShortcuts: !options.HideShortcuts,
		menuState:     menu.NewState(),
		events:        make(chan tea.Msg, eventBuffer),
	}

	for _, event := range []string{"scene_updated", "selection_changed"} {
		bridge.Subscribe(event, model.pushHandler(event))
	}

	return model
}

// pushHandler adapts one push event into the message channel. Handlers
// run on the bridge's dispatch path and must not block.
func (model *Model) pushHandler(event string) func(payload any) {
	events, logger := model.events, model.logger
	return func(payload any) {
		select {
		case events <- hostEventMsg{event: event, payload: payload}:
		default:
			logger.Warn("event queue full, dropping push", "event", event)
		}
	}
}

// Init implements tea.Model: arm the event listener and request the
// initial hierarchy.
func (model Model) Init() tea.Cmd {
	model.dispatchCall("get_scene_hierarchy", hostlink.NoParams())
	return listenForHostEvent(model.events)
}

// listenForHostEvent returns a tea.Cmd that blocks until the next
// internal message. Exactly one listener is armed at any time: Init
// arms the first, and each delivery re-arms the next.
func listenForHostEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// dispatchCall runs one host call on a goroutine and reports the
// outcome through the message channel. Every host operation the panel
// performs goes through here, so the UI never blocks on the host.
func (model Model) dispatchCall(method string, params hostlink.Params) {
	bridge, events, logger := model.bridge, model.events, model.logger
	go func() {
		result, err := bridge.Call(context.Background(), method, params)
		select {
		case events <- callResultMsg{method: method, result: result, err: err}:
		default:
			logger.Warn("event queue full, dropping call result", "method", method)
		}
	}()
}

// callAction binds a host operation into a non-blocking menu action.
func (model Model) callAction(method string, params hostlink.Params) menu.Action {
	return func() error {
		model.dispatchCall(method, params)
		return nil
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		// The placement math that opened the menu no longer holds.
		model.closeMenu()
		model.clampScroll()

	case tea.KeyMsg:
		if model.menuState.Visible() {
			return model.handleMenuKeys(message)
		}
		return model.handleTreeKeys(message)

	case tea.MouseMsg:
		if cmd := model.handleMouse(message); cmd != nil {
			return model, cmd
		}

	case hostEventMsg:
		model.handleHostEvent(message)
		return model, listenForHostEvent(model.events)

	case callResultMsg:
		return model.handleCallResult(message)

	case statusFadeMsg:
		model.status = ""
		model.statusIsError = false
	}
	return model, nil
}

// handleTreeKeys routes keyboard input while no menu is open.
func (model Model) handleTreeKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)

	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)

	case key.Matches(message, model.keys.Home):
		model.cursor = 0
		model.scrollOffset = 0

	case key.Matches(message, model.keys.End):
		model.cursor = len(model.rows) - 1
		model.clampScroll()

	case key.Matches(message, model.keys.Refresh):
		model.dispatchCall("get_scene_hierarchy", hostlink.NoParams())

	case key.Matches(message, model.keys.Select):
		if row, ok := model.cursorRow(); ok {
			model.dispatchCall("select_node", hostlink.Positional(row.Node.Name))
		}

	case key.Matches(message, model.keys.ToggleVisibility):
		if row, ok := model.cursorRow(); ok {
			model.dispatchCall("set_visibility", hostlink.Named(map[string]any{
				"node_name": row.Node.Name,
				"visible":   !row.Node.Visible,
			}))
		}

	case key.Matches(message, model.keys.ContextMenu):
		if row, ok := model.cursorRow(); ok {
			// Anchor beside the row's label, like a pointer would.
			model.openMenu(2+2*row.Depth, model.rowScreenY(model.cursor), row)
		}
	}
	return model, nil
}

// handleMenuKeys routes keyboard input to the open menu. Navigation
// operates on the deepest open level.
func (model *Model) handleMenuKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	level := model.menuState.Depth() - 1
	items := model.menuState.ItemsAt(level)

	switch {
	case key.Matches(message, model.keys.MenuDismiss), key.Matches(message, model.keys.Quit):
		model.closeMenu()

	case key.Matches(message, model.keys.Up):
		model.menuCursors[level] = stepItem(items, model.menuCursors[level], -1)

	case key.Matches(message, model.keys.Down):
		model.menuCursors[level] = stepItem(items, model.menuCursors[level], 1)

	case key.Matches(message, model.keys.MenuExpand):
		index := model.menuCursors[level]
		if index >= 0 && index < len(items) && items[index].HasSubmenu() {
			model.menuState.Hover(level, index)
		}

	case key.Matches(message, model.keys.MenuCollapse):
		model.menuState.Collapse()

	case key.Matches(message, model.keys.MenuConfirm):
		return model.selectMenuItem(level, model.menuCursors[level])
	}

	model.rebuildPanes()
	return *model, nil
}

// handleMouse routes pointer input. While a menu is open the panes own
// the pointer: motion hovers, a press inside activates, a press
// outside dismisses without acting.
func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	if model.menuState.Visible() {
		if message.Action == tea.MouseActionMotion {
			if level, index, ok := model.paneHit(message.X, message.Y); ok {
				model.menuState.Hover(level, index)
				model.menuCursors[level] = index
				model.rebuildPanes()
			}
			return nil
		}
		if message.Action == tea.MouseActionPress {
			if level, index, ok := model.paneHit(message.X, message.Y); ok {
				_, cmd := model.selectMenuItem(level, index)
				return cmd
			}
			model.closeMenu()
			return nil
		}
		return nil
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.scrollBy(-1)

	case tea.MouseButtonWheelDown:
		model.scrollBy(1)

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return nil
		}
		if index, ok := model.rowAtScreenY(message.Y); ok {
			model.cursor = index
		}

	case tea.MouseButtonRight:
		if message.Action != tea.MouseActionPress {
			return nil
		}
		if index, ok := model.rowAtScreenY(message.Y); ok {
			model.cursor = index
			model.openMenu(message.X, message.Y, model.rows[index])
		}
	}
	return nil
}

// selectMenuItem activates one menu item and reflects the outcome in
// the panel. Action errors land in the status line; the menu state
// machine decides whether the menu closed.
func (model *Model) selectMenuItem(level, index int) (tea.Model, tea.Cmd) {
	closed, err := model.menuState.Select(level, index)
	if closed {
		model.closeMenu()
	} else {
		model.syncMenuCursors()
		model.rebuildPanes()
	}
	if err != nil {
		return *model, model.setStatus(err.Error(), true)
	}
	return *model, nil
}

// handleHostEvent applies one host push.
func (model *Model) handleHostEvent(message hostEventMsg) {
	switch message.event {
	case "scene_updated":
		nodes, match := ParseHierarchy(message.payload)
		model.logFallback(message.event, match)
		if !match.OK {
			model.logger.Warn("unrecognized scene_updated payload, keeping current scene")
			return
		}
		model.setScene(nodes)

	case "selection_changed":
		name, match := ParseSelection(message.payload)
		model.logFallback(message.event, match)
		if match.OK {
			model.selected = name
		}
	}
}

// handleCallResult applies one completed host call.
func (model Model) handleCallResult(message callResultMsg) (tea.Model, tea.Cmd) {
	listen := listenForHostEvent(model.events)

	if message.err != nil {
		model.logger.Error("host call failed", "method", message.method, "error", message.err)
		fade := model.setStatus(message.err.Error(), true)
		return model, tea.Batch(listen, fade)
	}

	if message.method == "get_scene_hierarchy" {
		nodes, match := ParseHierarchy(message.result)
		model.logFallback(message.method, match)
		if !match.OK {
			model.logger.Warn("unrecognized hierarchy result, keeping current scene")
			return model, listen
		}
		model.setScene(nodes)
		return model, listen
	}

	// Mutations answer with a result envelope; surface its message.
	// The scene itself refreshes through the host's scene_updated
	// push, not here.
	if note, match := envelope.String(message.result, "message"); match.OK && note != "" {
		fade := model.setStatus(note, false)
		return model, tea.Batch(listen, fade)
	}
	return model, listen
}

// setStatus records a status notice and returns the fade timer.
func (model *Model) setStatus(status string, isError bool) tea.Cmd {
	model.status = status
	model.statusIsError = isError
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{}
	})
}

// logFallback notes payloads that only matched through a fallback key:
// the host has probably moved to an envelope shape this panel does not
// name explicitly yet.
func (model *Model) logFallback(source string, match envelope.Match) {
	if match.OK && match.Fallback {
		model.logger.Info("payload matched through fallback key", "source", source, "key", match.Key)
	}
}

// setScene replaces the displayed hierarchy, keeping the cursor on the
// same node when it survives the update. A menu whose target vanished
// closes.
func (model *Model) setScene(nodes []SceneNode) {
	var cursorName string
	if row, ok := model.cursorRow(); ok {
		cursorName = row.Node.Name
	}

	model.rows = Flatten(nodes)

	model.cursor = 0
	for index, row := range model.rows {
		if row.Node.Name == cursorName {
			model.cursor = index
			break
		}
	}
	model.clampScroll()

	if model.menuState.Visible() && !model.hasNode(model.menuTarget) {
		model.closeMenu()
	}
}

func (model *Model) hasNode(name string) bool {
	for _, row := range model.rows {
		if row.Node.Name == name {
			return true
		}
	}
	return false
}

// openMenu builds and shows the context menu for a row, anchored at
// viewport coordinates.
func (model *Model) openMenu(x, y int, row Row) {
	available := model.bridge.Capability() != hostlink.CapabilityUnavailable
	items := BuildNodeMenu(row.Node, available, model.callAction)
	model.menuState.Show(x, y, items)
	model.menuTarget = row.Node.Name
	model.menuCursors = model.menuCursors[:0]
	model.syncMenuCursors()
	model.rebuildPanes()
}

func (model *Model) closeMenu() {
	model.menuState.Hide()
	model.menuTarget = ""
	model.menuCursors = model.menuCursors[:0]
	model.panes = nil
}

// syncMenuCursors keeps one keyboard cursor per open level. Levels
// that stay open keep their cursor; a newly opened level starts on its
// first selectable item; a level whose parent expanded it points at
// the expansion.
func (model *Model) syncMenuCursors() {
	depth := model.menuState.Depth()
	for level := 0; level < depth-1; level++ {
		if level < len(model.menuCursors) {
			// The cursor on an expanding level sits on the submenu
			// owner.
			if active := model.menuState.ActiveAt(level); active >= 0 {
				model.menuCursors[level] = active
			}
		}
	}
	for len(model.menuCursors) < depth {
		level := len(model.menuCursors)
		items := model.menuState.ItemsAt(level)
		model.menuCursors = append(model.menuCursors, stepItem(items, -1, 1))
	}
	model.menuCursors = model.menuCursors[:depth]
}

// stepItem moves an item cursor by direction, skipping separators and
// disabled items, without wrapping. Returns the original index when no
// selectable item exists in that direction.
func stepItem(items []menu.Node, from, direction int) int {
	for index := from + direction; index >= 0 && index < len(items); index += direction {
		if !items[index].IsSeparator() && !items[index].Disabled {
			return index
		}
	}
	return from
}

// rebuildPanes derives the placed panes from the menu state: the root
// pane clamps to the viewport at the anchor, each deeper level hangs
// off its parent's expanded row with overflow flipping.
func (model *Model) rebuildPanes() {
	model.panes = model.panes[:0]
	if !model.menuState.Visible() {
		return
	}
	model.syncMenuCursors()

	viewport := menu.Viewport{Width: model.width, Height: model.height}
	var parent menu.Pane
	for level := 0; level < model.menuState.Depth(); level++ {
		pane := menu.Pane{
			Items:  model.paneItems(level),
			Cursor: model.menuCursors[level],
		}
		size := menu.Size{Width: pane.Width(), Height: pane.Height()}
		if level == 0 {
			anchor := model.menuState.Anchor()
			pane.Origin = menu.ClampToViewport(menu.Point{X: anchor.X, Y: anchor.Y}, size, viewport)
		} else {
			itemTop := parent.ItemTop(model.menuState.ActiveAt(level - 1))
			pane.Origin = menu.PlaceSubmenu(parent.Rect(), itemTop, size, viewport)
		}
		model.panes = append(model.panes, pane)
		parent = pane
	}
}

// paneItems returns the items rendered at a level, with shortcut hints
// stripped when the panel is configured to hide them.
func (model *Model) paneItems(level int) []menu.Node {
	items := model.menuState.ItemsAt(level)
	if model.showShortcuts {
		return items
	}
	stripped := make([]menu.Node, len(items))
	copy(stripped, items)
	for index := range stripped {
		stripped[index].Shortcut = ""
	}
	return stripped
}

// paneHit finds the deepest pane containing a viewport point and the
// item index under it. ok is false when the point is outside every
// pane.
func (model *Model) paneHit(x, y int) (level, index int, ok bool) {
	for level := len(model.panes) - 1; level >= 0; level-- {
		pane := model.panes[level]
		if pane.Contains(x, y) {
			return level, pane.ItemAt(y), true
		}
	}
	return 0, 0, false
}

// Scroll and cursor bookkeeping.

func (model *Model) cursorRow() (Row, bool) {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return Row{}, false
	}
	return model.rows[model.cursor], true
}

func (model *Model) moveCursor(direction int) {
	next := model.cursor + direction
	if next < 0 || next >= len(model.rows) {
		return
	}
	model.cursor = next
	model.clampScroll()
}

func (model *Model) scrollBy(direction int) {
	model.scrollOffset += direction
	maxOffset := len(model.rows) - model.contentHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// clampScroll keeps the cursor row inside the visible window.
func (model *Model) clampScroll() {
	if model.cursor >= len(model.rows) {
		model.cursor = len(model.rows) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	height := model.contentHeight()
	if height <= 0 {
		return
	}
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
}

// contentHeight is the rows available to the tree: everything but the
// header, status, and help lines.
func (model *Model) contentHeight() int {
	return model.height - 3
}

// contentStartY is the first tree row's Y coordinate (the header is
// one line).
func contentStartY() int {
	return 1
}

// rowAtScreenY maps a viewport Y to a row index.
func (model *Model) rowAtScreenY(y int) (int, bool) {
	index := model.scrollOffset + y - contentStartY()
	if y < contentStartY() || y >= contentStartY()+model.contentHeight() {
		return 0, false
	}
	if index < 0 || index >= len(model.rows) {
		return 0, false
	}
	return index, true
}

// rowScreenY maps a row index to its viewport Y coordinate.
func (model *Model) rowScreenY(index int) int {
	return contentStartY() + index - model.scrollOffset
}
