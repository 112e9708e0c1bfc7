// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope extracts typed values from host push payloads of
// unspecified shape.
//
// The host's command set does not agree on a single payload layout: a
// scene update may arrive as a bare array, or wrapped in an object
// under "value", "nodes", or another field, depending on the host
// version and transport. The extractors here apply one deterministic
// algorithm for every target type:
//
//  1. If the payload is directly of the target type, return it.
//  2. If the payload is a keyed object, probe the caller's candidate
//     field names in order; first type-correct match wins.
//  3. Probe a fixed, type-specific list of common fallback names.
//  4. Return the type's empty value.
//
// Extraction never fails and never panics; a [Match] result reports
// which key (if any) located the value and whether it was a fallback
// key, which signals a naming-contract drift between the host and this
// panel that callers should log.
//
// All functions are pure: same payload and candidate list, same result.
package envelope
