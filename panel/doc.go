// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

// Package panel is the scene panel's composition root: a bubbletea
// model that renders the host's scene hierarchy, serves the cascading
// context menu, and routes every scene operation through a
// hostlink.Bridge.
//
// The model is strictly single-threaded in the bubbletea sense. Host
// pushes and asynchronous call results arrive on an internal message
// channel and enter the Elm loop as messages; menu actions never block
// the UI — they dispatch the bridge call on a goroutine and report the
// outcome through the same channel.
//
// Payloads from the host are normalized with the envelope package at
// this boundary, and nowhere else: the rest of the package works on
// typed [SceneNode] values. When a payload only matched through a
// fallback key the match is logged, since that usually means the host
// moved to a new envelope shape.
package panel
