// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package mockhost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scenepanel/scenepanel/hostlink"
)

// node is one scene object. Shapes live under their transform.
type node struct {
	name             string
	nodeType         string
	visible          bool
	hiddenInOutliner bool
	children         []*node
}

// Host is an in-process method table serving a small fixed scene. It
// answers the same operations a real embedding host answers and pushes
// the same events, so the panel runs unmodified against it.
type Host struct {
	logger *slog.Logger

	mu        sync.Mutex
	nodes     []*node
	selection []string
	dagOnly   bool
	notify    func(event string, payload any)
	pushes    int
	pending   []push
	wake      chan struct{}
}

// push is one queued event delivery.
type push struct {
	event   string
	payload any
}

// New returns a Host with the demo scene: two polygon objects with
// their shapes, the default camera, and one non-DAG set that only
// shows once DAG-only display is toggled off.
func New(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	host := &Host{
		logger:  logger,
		dagOnly: true,
		wake:    make(chan struct{}, 1),
		nodes: []*node{
			{name: "pCube1", nodeType: "transform", visible: true, children: []*node{
				{name: "pCubeShape1", nodeType: "mesh", visible: true},
			}},
			{name: "pSphere1", nodeType: "transform", visible: true, children: []*node{
				{name: "pSphereShape1", nodeType: "mesh", visible: true},
			}},
			{name: "persp", nodeType: "camera", visible: true, children: []*node{
				{name: "perspShape", nodeType: "camera", visible: true},
			}},
			{name: "defaultLightSet", nodeType: "objectSet", visible: true},
		},
	}
	go host.dispatchLoop()
	return host
}

// SetNotify installs the push-event sink, typically Bridge.Notify.
func (h *Host) SetNotify(notify func(event string, payload any)) {
	h.mu.Lock()
	h.notify = notify
	h.mu.Unlock()
}

// Invoke implements hostlink.MethodTable.
func (h *Host) Invoke(_ context.Context, method string, params hostlink.Params) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logger.Debug("mock host call", "method", method, "params", params.String())

	switch method {
	case "get_scene_hierarchy":
		return h.hierarchyLocked(), nil

	case "select_node":
		name, err := nodeNameArg(params)
		if err != nil {
			return nil, err
		}
		if h.findLocked(name) == nil {
			return nil, fmt.Errorf("node not found: %s", name)
		}
		h.selection = []string{name}
		h.pushLocked("selection_changed", map[string]any{
			"node":      name,
			"selection": anyStrings(h.selection),
		})
		return result(true, "Selected: "+name), nil

	case "set_visibility":
		arguments, ok := params.NamedArgs()
		if !ok {
			return nil, fmt.Errorf("set_visibility requires named arguments")
		}
		name, _ := arguments["node_name"].(string)
		visible, _ := arguments["visible"].(bool)
		target := h.findLocked(name)
		if target == nil {
			return nil, fmt.Errorf("node not found: %s", name)
		}
		target.visible = visible
		h.pushSceneLocked()
		if visible {
			return result(true, "Showed: "+name), nil
		}
		return result(true, "Hid: "+name), nil

	case "show_selected":
		if len(h.selection) == 0 {
			return result(false, "Nothing selected"), nil
		}
		for _, name := range h.selection {
			if target := h.findLocked(name); target != nil {
				target.visible = true
			}
		}
		h.pushSceneLocked()
		return result(true, fmt.Sprintf("Showed %d node(s)", len(h.selection))), nil

	case "show_shapes":
		name, err := nodeNameArg(params)
		if err != nil {
			return nil, err
		}
		target := h.findLocked(name)
		if target == nil {
			return nil, fmt.Errorf("node not found: %s", name)
		}
		shown := 0
		for _, child := range target.children {
			if !child.visible {
				child.visible = true
				shown++
			}
		}
		h.pushSceneLocked()
		return result(true, fmt.Sprintf("Showed %d shape(s) under %s", shown, name)), nil

	case "show_only_dag_objects":
		h.dagOnly = !h.dagOnly
		h.pushSceneLocked()
		if h.dagOnly {
			return result(true, "Showing DAG objects only"), nil
		}
		return result(true, "Showing all nodes"), nil

	case "hide_in_outliner":
		name, err := nodeNameArg(params)
		if err != nil {
			return nil, err
		}
		target := h.findLocked(name)
		if target == nil {
			return nil, fmt.Errorf("node not found: %s", name)
		}
		target.hiddenInOutliner = true
		h.pushSceneLocked()
		return result(true, "Hidden in outliner: "+name), nil

	case "delete_node":
		name, err := nodeNameArg(params)
		if err != nil {
			return nil, err
		}
		if !h.removeLocked(name) {
			return nil, fmt.Errorf("node not found: %s", name)
		}
		h.selection = without(h.selection, name)
		h.pushSceneLocked()
		return result(true, "Deleted: "+name), nil

	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

// result builds the host's standard operation envelope.
func result(ok bool, message string) map[string]any {
	return map[string]any{"ok": ok, "message": message}
}

// nodeNameArg accepts the two call styles hosts historically used for
// single-node operations: one positional string, or a named node_name.
func nodeNameArg(params hostlink.Params) (string, error) {
	if values, ok := params.PositionalArgs(); ok {
		if len(values) != 1 {
			return "", fmt.Errorf("want exactly one positional argument, got %d", len(values))
		}
		name, ok := values[0].(string)
		if !ok {
			return "", fmt.Errorf("node name is %T, want string", values[0])
		}
		return name, nil
	}
	if arguments, ok := params.NamedArgs(); ok {
		name, ok := arguments["node_name"].(string)
		if !ok {
			return "", fmt.Errorf("missing node_name argument")
		}
		return name, nil
	}
	return "", fmt.Errorf("node operation requires a node name")
}

// dagType reports whether a node type lives in the DAG. Sets and other
// dependency-graph-only nodes are filtered from the hierarchy while
// DAG-only display is on.
func dagType(nodeType string) bool {
	switch nodeType {
	case "transform", "mesh", "shape", "camera":
		return true
	}
	return false
}

// hierarchyLocked renders the scene as the generic structures a real
// host's serializer produces. Outliner-hidden nodes are omitted, as
// are non-DAG nodes while DAG-only display is on.
func (h *Host) hierarchyLocked() []any {
	var render func(nodes []*node) []any
	render = func(nodes []*node) []any {
		out := []any{}
		for _, n := range nodes {
			if n.hiddenInOutliner {
				continue
			}
			if h.dagOnly && !dagType(n.nodeType) {
				continue
			}
			out = append(out, map[string]any{
				"name":     n.name,
				"type":     n.nodeType,
				"visible":  n.visible,
				"children": render(n.children),
			})
		}
		return out
	}
	return render(h.nodes)
}

// pushSceneLocked emits scene_updated. Host versions disagree on the
// payload shape — older ones push the bare array, newer ones wrap it
// in {value: ...} — so the mock alternates between the two to keep the
// panel's envelope handling honest.
func (h *Host) pushSceneLocked() {
	hierarchy := h.hierarchyLocked()
	h.pushes++
	if h.pushes%2 == 0 {
		h.pushLocked("scene_updated", map[string]any{"value": hierarchy})
		return
	}
	h.pushLocked("scene_updated", hierarchy)
}

// pushLocked queues one event for delivery. A single dispatch loop
// drains the queue so pushes from back-to-back mutations reach the
// sink in mutation order.
func (h *Host) pushLocked(event string, payload any) {
	if h.notify == nil {
		return
	}
	h.pending = append(h.pending, push{event: event, payload: payload})
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// dispatchLoop delivers queued pushes one at a time. The lock is
// released around the sink call: handlers may call back into Invoke.
func (h *Host) dispatchLoop() {
	for range h.wake {
		for {
			h.mu.Lock()
			if len(h.pending) == 0 {
				h.mu.Unlock()
				break
			}
			next := h.pending[0]
			h.pending = h.pending[1:]
			notify := h.notify
			h.mu.Unlock()
			if notify != nil {
				notify(next.event, next.payload)
			}
		}
	}
}

func (h *Host) findLocked(name string) *node {
	var find func(nodes []*node) *node
	find = func(nodes []*node) *node {
		for _, n := range nodes {
			if n.name == name {
				return n
			}
			if found := find(n.children); found != nil {
				return found
			}
		}
		return nil
	}
	return find(h.nodes)
}

func (h *Host) removeLocked(name string) bool {
	var remove func(nodes []*node) ([]*node, bool)
	remove = func(nodes []*node) ([]*node, bool) {
		for index, n := range nodes {
			if n.name == name {
				return append(nodes[:index], nodes[index+1:]...), true
			}
			if children, removed := remove(n.children); removed {
				n.children = children
				return nodes, true
			}
		}
		return nodes, false
	}
	nodes, removed := remove(h.nodes)
	h.nodes = nodes
	return removed
}

func without(names []string, name string) []string {
	out := names[:0]
	for _, candidate := range names {
		if candidate != name {
			out = append(out, candidate)
		}
	}
	return out
}

func anyStrings(names []string) []any {
	out := make([]any, len(names))
	for index, name := range names {
		out[index] = name
	}
	return out
}
