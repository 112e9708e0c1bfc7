// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostlink is the remote-call bridge between the panel and its
// embedding host application.
//
// The host's transport surface varies by host and version, and may not
// exist yet when the panel starts. [Bridge] hides this behind a
// capability probe with a closed set of variants, re-evaluated at
// every call and subscribe rather than cached at startup:
//
//   - [MethodTable]: a live table of host operations, invoked
//     directly. Preferred — it yields the most specific errors.
//   - [EventChannel]: the legacy path. A call is encoded as an
//     outbound event named after the method; the response is a
//     correlated "<method>.response" event, bounded by a per-call
//     timeout.
//   - Neither: calls fail immediately with
//     [TransportUnavailableError]. They never hang and are never
//     retried by the bridge — retry policy belongs to the caller.
//
// Call parameters preserve a three-way encoding the host's argument
// binding depends on: [NoParams] invokes with zero arguments, [Named]
// with keyword arguments, [Positional] with positional arguments, and
// [Null] with a single "no value" argument (distinct from omission).
//
// Subscriptions deliver host-pushed events to any number of handlers
// in registration order. The underlying channel listener is installed
// exactly once per event name and removed when the last subscription
// is cancelled. Payloads are delivered raw: shape normalization is the
// envelope package's job, and the bridge has zero knowledge of
// per-event shapes.
//
// [SocketChannel] is the concrete EventChannel: CBOR frames over a
// Unix socket.
package hostlink
