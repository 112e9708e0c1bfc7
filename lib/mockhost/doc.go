// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

// Package mockhost provides an in-process stand-in for the embedding
// 3D host.
//
// [Host] implements hostlink.MethodTable over a small fixed scene
// (two polygon objects and the default camera) and pushes the same
// scene_updated and selection_changed events a real host pushes. Run
// the panel with --mock to develop against it without a host process.
//
// The mock deliberately reproduces the payload-shape drift of real
// host versions: scene_updated alternates between the bare hierarchy
// array and the {value: ...} wrapper.
package mockhost
