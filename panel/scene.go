// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import (
	"github.com/scenepanel/scenepanel/envelope"
)

// SceneNode is one object in the host's scene hierarchy.
type SceneNode struct {
	// Name is the host-side node name, unique within the scene, and
	// the handle every operation takes.
	Name string

	// Type is the host's node classification ("transform", "mesh",
	// "camera", ...). Display only.
	Type string

	// Visible is the node's own visibility flag, independent of its
	// ancestors'.
	Visible bool

	Children []SceneNode
}

// HasShapes reports whether any direct child is a shape-like node
// (anything that is not itself a transform).
func (n SceneNode) HasShapes() bool {
	for _, child := range n.Children {
		if child.Type != "transform" {
			return true
		}
	}
	return false
}

// ParseHierarchy normalizes a hierarchy payload — a scene_updated push
// or a get_scene_hierarchy result — into typed nodes. Host versions
// disagree on the outer shape (bare array vs. wrapped), which the
// envelope probe absorbs; the returned Match tells the caller how the
// payload was recognized so fallback hits can be logged.
func ParseHierarchy(payload any) ([]SceneNode, envelope.Match) {
	entries, match := envelope.Array(payload, "nodes")
	nodes := make([]SceneNode, 0, len(entries))
	for _, entry := range entries {
		object, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		nodes = append(nodes, parseNode(object))
	}
	return nodes, match
}

func parseNode(object map[string]any) SceneNode {
	node := SceneNode{Visible: true}
	node.Name, _ = object["name"].(string)
	node.Type, _ = object["type"].(string)
	if visible, ok := object["visible"].(bool); ok {
		node.Visible = visible
	}
	if children, ok := object["children"].([]any); ok {
		for _, entry := range children {
			if childObject, ok := entry.(map[string]any); ok {
				node.Children = append(node.Children, parseNode(childObject))
			}
		}
	}
	return node
}

// ParseSelection extracts the selected node name from a
// selection_changed push.
func ParseSelection(payload any) (string, envelope.Match) {
	return envelope.String(payload, "node")
}

// Row is one display line of the flattened hierarchy.
type Row struct {
	Node  SceneNode
	Depth int
}

// Flatten produces the display order: depth-first, parents before
// children.
func Flatten(nodes []SceneNode) []Row {
	var rows []Row
	var walk func(nodes []SceneNode, depth int)
	walk = func(nodes []SceneNode, depth int) {
		for _, node := range nodes {
			rows = append(rows, Row{Node: node, Depth: depth})
			walk(node.Children, depth+1)
		}
	}
	walk(nodes, 0)
	return rows
}
