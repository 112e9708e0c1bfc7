// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides scenepanel's standard CBOR encoding
// configuration.
//
// The host event channel speaks CBOR: every frame on the socket is a
// CBOR-encoded envelope, and call parameters and push payloads travel
// as CBOR values. This package provides the shared encoding and
// decoding modes so that every package encodes identically without
// duplicating configuration. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
//
// For buffer-oriented operations (frame payloads):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (the channel socket):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// Decoding into an any-typed target produces map[string]any for maps
// and []any for arrays, which is the shape the envelope extractors
// consume — host payloads are deliberately left untyped until the
// payload adapter normalizes them.
package codec
