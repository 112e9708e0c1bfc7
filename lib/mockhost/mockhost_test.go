// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package mockhost

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/scenepanel/scenepanel/hostlink"
)

type pushedEvent struct {
	event   string
	payload any
}

func newTestHost(t *testing.T) (*Host, <-chan pushedEvent) {
	t.Helper()
	host := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	pushes := make(chan pushedEvent, 16)
	host.SetNotify(func(event string, payload any) {
		pushes <- pushedEvent{event: event, payload: payload}
	})
	return host, pushes
}

func awaitPush(t *testing.T, pushes <-chan pushedEvent, event string) pushedEvent {
	t.Helper()
	select {
	case push := <-pushes:
		if push.event != event {
			t.Fatalf("pushed %q, want %q", push.event, event)
		}
		return push
	case <-time.After(2 * time.Second):
		t.Fatalf("no %q push", event)
		panic("unreachable")
	}
}

// hierarchyNames flattens a hierarchy payload into node names,
// depth-first.
func hierarchyNames(t *testing.T, hierarchy any) []string {
	t.Helper()
	nodes, ok := hierarchy.([]any)
	if !ok {
		t.Fatalf("hierarchy is %T, want array", hierarchy)
	}
	var names []string
	for _, entry := range nodes {
		object, ok := entry.(map[string]any)
		if !ok {
			t.Fatalf("node is %T, want object", entry)
		}
		name, _ := object["name"].(string)
		names = append(names, name)
		if children, ok := object["children"].([]any); ok && len(children) > 0 {
			names = append(names, hierarchyNames(t, children)...)
		}
	}
	return names
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

func TestGetSceneHierarchy(t *testing.T) {
	host, _ := newTestHost(t)

	hierarchy, err := host.Invoke(context.Background(), "get_scene_hierarchy", hostlink.NoParams())
	if err != nil {
		t.Fatalf("get_scene_hierarchy: %v", err)
	}

	names := hierarchyNames(t, hierarchy)
	for _, want := range []string{"pCube1", "pCubeShape1", "pSphere1", "pSphereShape1", "persp"} {
		if !containsName(names, want) {
			t.Errorf("hierarchy missing %s: %v", want, names)
		}
	}
}

func TestSelectNodePushesSelectionChanged(t *testing.T) {
	host, pushes := newTestHost(t)

	outcome, err := host.Invoke(context.Background(), "select_node", hostlink.Positional("pSphere1"))
	if err != nil {
		t.Fatalf("select_node: %v", err)
	}
	envelope := outcome.(map[string]any)
	if envelope["ok"] != true || !strings.Contains(envelope["message"].(string), "pSphere1") {
		t.Errorf("result = %v", envelope)
	}

	push := awaitPush(t, pushes, "selection_changed")
	payload := push.payload.(map[string]any)
	if payload["node"] != "pSphere1" {
		t.Errorf("selection_changed payload = %v", payload)
	}
}

func TestSelectUnknownNodeFails(t *testing.T) {
	host, _ := newTestHost(t)

	_, err := host.Invoke(context.Background(), "select_node", hostlink.Positional("pTorus9"))
	if err == nil || !strings.Contains(err.Error(), "pTorus9") {
		t.Fatalf("err = %v, want node-not-found", err)
	}
}

func TestSetVisibilityPushesSceneUpdated(t *testing.T) {
	host, pushes := newTestHost(t)

	_, err := host.Invoke(context.Background(), "set_visibility",
		hostlink.Named(map[string]any{"node_name": "pCube1", "visible": false}))
	if err != nil {
		t.Fatalf("set_visibility: %v", err)
	}
	awaitPush(t, pushes, "scene_updated")

	hierarchy, err := host.Invoke(context.Background(), "get_scene_hierarchy", hostlink.NoParams())
	if err != nil {
		t.Fatalf("get_scene_hierarchy: %v", err)
	}
	nodes := hierarchy.([]any)
	cube := nodes[0].(map[string]any)
	if cube["name"] != "pCube1" || cube["visible"] != false {
		t.Errorf("pCube1 still visible: %v", cube)
	}
}

func TestShowSelected(t *testing.T) {
	host, pushes := newTestHost(t)
	ctx := context.Background()

	// Nothing selected yet: the host reports failure in the envelope,
	// not as a transport error.
	outcome, err := host.Invoke(ctx, "show_selected", hostlink.NoParams())
	if err != nil {
		t.Fatalf("show_selected: %v", err)
	}
	if outcome.(map[string]any)["ok"] != false {
		t.Errorf("expected ok=false with empty selection: %v", outcome)
	}

	host.Invoke(ctx, "set_visibility", hostlink.Named(map[string]any{"node_name": "pCube1", "visible": false}))
	awaitPush(t, pushes, "scene_updated")
	host.Invoke(ctx, "select_node", hostlink.Positional("pCube1"))
	awaitPush(t, pushes, "selection_changed")

	outcome, err = host.Invoke(ctx, "show_selected", hostlink.NoParams())
	if err != nil {
		t.Fatalf("show_selected: %v", err)
	}
	if outcome.(map[string]any)["ok"] != true {
		t.Errorf("result = %v", outcome)
	}
	awaitPush(t, pushes, "scene_updated")

	hierarchy, _ := host.Invoke(ctx, "get_scene_hierarchy", hostlink.NoParams())
	cube := hierarchy.([]any)[0].(map[string]any)
	if cube["visible"] != true {
		t.Errorf("pCube1 not shown: %v", cube)
	}
}

func TestShowShapes(t *testing.T) {
	host, pushes := newTestHost(t)
	ctx := context.Background()

	host.Invoke(ctx, "set_visibility", hostlink.Named(map[string]any{"node_name": "pCubeShape1", "visible": false}))
	awaitPush(t, pushes, "scene_updated")

	outcome, err := host.Invoke(ctx, "show_shapes", hostlink.Positional("pCube1"))
	if err != nil {
		t.Fatalf("show_shapes: %v", err)
	}
	if message := outcome.(map[string]any)["message"].(string); !strings.Contains(message, "1 shape") {
		t.Errorf("message = %q", message)
	}

	hierarchy, _ := host.Invoke(ctx, "get_scene_hierarchy", hostlink.NoParams())
	cube := hierarchy.([]any)[0].(map[string]any)
	shape := cube["children"].([]any)[0].(map[string]any)
	if shape["visible"] != true {
		t.Errorf("shape not shown: %v", shape)
	}
}

func TestHideInOutlinerRemovesFromHierarchy(t *testing.T) {
	host, _ := newTestHost(t)
	ctx := context.Background()

	if _, err := host.Invoke(ctx, "hide_in_outliner", hostlink.Positional("persp")); err != nil {
		t.Fatalf("hide_in_outliner: %v", err)
	}

	hierarchy, _ := host.Invoke(ctx, "get_scene_hierarchy", hostlink.NoParams())
	if names := hierarchyNames(t, hierarchy); containsName(names, "persp") {
		t.Errorf("persp still listed: %v", names)
	}
}

func TestDeleteNode(t *testing.T) {
	host, pushes := newTestHost(t)
	ctx := context.Background()

	host.Invoke(ctx, "select_node", hostlink.Positional("pCube1"))
	awaitPush(t, pushes, "selection_changed")

	if _, err := host.Invoke(ctx, "delete_node", hostlink.Positional("pCube1")); err != nil {
		t.Fatalf("delete_node: %v", err)
	}
	awaitPush(t, pushes, "scene_updated")

	hierarchy, _ := host.Invoke(ctx, "get_scene_hierarchy", hostlink.NoParams())
	if names := hierarchyNames(t, hierarchy); containsName(names, "pCube1") {
		t.Errorf("pCube1 still listed: %v", names)
	}

	// The deleted node left the selection too: show_selected finds
	// nothing.
	outcome, _ := host.Invoke(ctx, "show_selected", hostlink.NoParams())
	if outcome.(map[string]any)["ok"] != false {
		t.Errorf("selection kept a deleted node: %v", outcome)
	}
}

func TestSceneUpdatedShapeAlternates(t *testing.T) {
	host, pushes := newTestHost(t)
	ctx := context.Background()

	host.Invoke(ctx, "set_visibility", hostlink.Named(map[string]any{"node_name": "pCube1", "visible": false}))
	first := awaitPush(t, pushes, "scene_updated")
	host.Invoke(ctx, "set_visibility", hostlink.Named(map[string]any{"node_name": "pCube1", "visible": true}))
	second := awaitPush(t, pushes, "scene_updated")

	_, firstWrapped := first.payload.(map[string]any)
	_, secondWrapped := second.payload.(map[string]any)
	if firstWrapped == secondWrapped {
		t.Errorf("payload shape did not alternate: %T then %T", first.payload, second.payload)
	}
}

func TestPushesDeliverInMutationOrder(t *testing.T) {
	host, pushes := newTestHost(t)
	ctx := context.Background()

	host.Invoke(ctx, "set_visibility", hostlink.Named(map[string]any{"node_name": "pCube1", "visible": false}))
	host.Invoke(ctx, "delete_node", hostlink.Positional("pSphere1"))

	first := awaitPush(t, pushes, "scene_updated")
	second := awaitPush(t, pushes, "scene_updated")

	if !containsName(hierarchyNames(t, unwrapScene(t, first.payload)), "pSphere1") {
		t.Error("first push reflects the later mutation; pushes arrived out of order")
	}
	if containsName(hierarchyNames(t, unwrapScene(t, second.payload)), "pSphere1") {
		t.Error("last push is stale: pSphere1 still present after delete")
	}
}

// unwrapScene tolerates both scene_updated payload shapes.
func unwrapScene(t *testing.T, payload any) any {
	t.Helper()
	if wrapped, ok := payload.(map[string]any); ok {
		return wrapped["value"]
	}
	return payload
}

func TestShowOnlyDagObjectsToggles(t *testing.T) {
	host, pushes := newTestHost(t)
	ctx := context.Background()

	hierarchy, err := host.Invoke(ctx, "get_scene_hierarchy", hostlink.NoParams())
	if err != nil {
		t.Fatalf("get_scene_hierarchy: %v", err)
	}
	if containsName(hierarchyNames(t, hierarchy), "defaultLightSet") {
		t.Error("non-DAG node visible before toggling DAG-only off")
	}

	reply, err := host.Invoke(ctx, "show_only_dag_objects", hostlink.NoParams())
	if err != nil {
		t.Fatalf("show_only_dag_objects: %v", err)
	}
	if message := reply.(map[string]any)["message"].(string); !strings.Contains(message, "all nodes") {
		t.Errorf("toggle-off message = %q", message)
	}
	scene := awaitPush(t, pushes, "scene_updated")
	if !containsName(hierarchyNames(t, unwrapScene(t, scene.payload)), "defaultLightSet") {
		t.Error("non-DAG node missing after toggling DAG-only off")
	}

	host.Invoke(ctx, "show_only_dag_objects", hostlink.NoParams())
	scene = awaitPush(t, pushes, "scene_updated")
	if containsName(hierarchyNames(t, unwrapScene(t, scene.payload)), "defaultLightSet") {
		t.Error("non-DAG node still visible after toggling DAG-only back on")
	}
}

func TestUnknownMethod(t *testing.T) {
	host, _ := newTestHost(t)
	_, err := host.Invoke(context.Background(), "reticulate_splines", hostlink.NoParams())
	if err == nil {
		t.Fatal("unknown method accepted")
	}
}

var _ hostlink.MethodTable = (*Host)(nil)
