// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import (
	"github.com/scenepanel/scenepanel/hostlink"
	"github.com/scenepanel/scenepanel/menu"
)

// CallFunc binds a host operation into a menu action. The model's
// implementation dispatches the call asynchronously; actions built
// from it return immediately.
type CallFunc func(method string, params hostlink.Params) menu.Action

// BuildNodeMenu assembles the context menu for one scene node. The
// structure is fixed; what varies with the node's state is which items
// are enabled:
//
//   - Show and Hide are mutually exclusive on the node's current
//     visibility — exactly one of the pair is enabled.
//   - Show Shapes requires shape children under the node.
//   - With no host transport at all, every operation is disabled and
//     the menu degrades to a read-only listing.
func BuildNodeMenu(node SceneNode, hostAvailable bool, call CallFunc) []menu.Node {
	offline := !hostAvailable
	return []menu.Node{
		{
			Label:    "Select",
			Shortcut: "S",
			Disabled: offline,
			Action:   call("select_node", hostlink.Positional(node.Name)),
		},
		menu.Separator(),
		{
			Label:    "Show",
			Disabled: offline || node.Visible,
			Action: call("set_visibility", hostlink.Named(map[string]any{
				"node_name": node.Name,
				"visible":   true,
			})),
		},
		{
			Label:    "Hide",
			Shortcut: "H",
			Disabled: offline || !node.Visible,
			Action: call("set_visibility", hostlink.Named(map[string]any{
				"node_name": node.Name,
				"visible":   false,
			})),
		},
		{
			Label: "Display",
			Submenu: []menu.Node{
				{
					Label:    "Show Selected",
					Disabled: offline,
					Action:   call("show_selected", hostlink.NoParams()),
				},
				{
					Label:    "Show Shapes",
					Disabled: offline || !node.HasShapes(),
					Action:   call("show_shapes", hostlink.Positional(node.Name)),
				},
				{
					Label:    "DAG Objects Only",
					Disabled: offline,
					Action:   call("show_only_dag_objects", hostlink.NoParams()),
				},
				menu.Separator(),
				{
					Label:    "Hide in Outliner",
					Disabled: offline,
					Action:   call("hide_in_outliner", hostlink.Positional(node.Name)),
				},
			},
		},
		menu.Separator(),
		{
			Label:    "Delete",
			Shortcut: "Del",
			Disabled: offline,
			Action:   call("delete_node", hostlink.Positional(node.Name)),
		},
	}
}
