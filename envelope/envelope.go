// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

// Match reports how an extractor located its value.
type Match struct {
	// OK is true when a value of the target type was found, whether
	// directly, by candidate key, or by fallback key. False means the
	// extractor returned the type's empty value.
	OK bool

	// Key is the object field that held the value. Empty when the
	// payload was directly of the target type.
	Key string

	// Fallback is true when Key came from the built-in fallback list
	// rather than the caller's candidates. A fallback match means the
	// host is using a field name this call site did not expect.
	Fallback bool
}

// Fallback field names probed after the caller's candidates, in order.
// These are the generic wrapper names observed across host versions:
// the Qt host wraps arrays as {"value": ...}, older builds used
// "nodes" and "items", and the generic event path uses "data".
var (
	arrayFallbackKeys  = []string{"value", "nodes", "items", "data"}
	stringFallbackKeys = []string{"value", "name", "node", "message"}
	objectFallbackKeys = []string{"value", "data", "detail", "result"}
)

// Array extracts a sequence from payload. Candidates are probed before
// the built-in fallback keys. Returns an empty (nil) slice when no
// sequence is found.
func Array(payload any, candidates ...string) ([]any, Match) {
	if direct, ok := payload.([]any); ok {
		return direct, Match{OK: true}
	}
	value, match := probe(payload, candidates, arrayFallbackKeys, func(v any) bool {
		_, ok := v.([]any)
		return ok
	})
	if !match.OK {
		return nil, match
	}
	return value.([]any), match
}

// String extracts a string from payload. Returns "" when no string is
// found.
func String(payload any, candidates ...string) (string, Match) {
	if direct, ok := payload.(string); ok {
		return direct, Match{OK: true}
	}
	value, match := probe(payload, candidates, stringFallbackKeys, func(v any) bool {
		_, ok := v.(string)
		return ok
	})
	if !match.OK {
		return "", match
	}
	return value.(string), match
}

// Object extracts a keyed object from payload. A payload that is itself
// an object qualifies as a direct match only when none of the candidate
// or fallback keys locate a nested object inside it — an object wrapper
// {"value": {...}} should yield the inner object, not the wrapper.
// Returns an empty (non-nil) map when no object is found.
func Object(payload any, candidates ...string) (map[string]any, Match) {
	value, match := probe(payload, candidates, objectFallbackKeys, func(v any) bool {
		_, ok := v.(map[string]any)
		return ok
	})
	if match.OK {
		return value.(map[string]any), match
	}
	if direct, ok := payload.(map[string]any); ok {
		return direct, Match{OK: true}
	}
	return map[string]any{}, Match{}
}

// probe walks candidate keys then fallback keys over a keyed payload,
// returning the first value accepted by the type predicate.
func probe(payload any, candidates, fallbacks []string, isTarget func(any) bool) (any, Match) {
	object, ok := payload.(map[string]any)
	if !ok {
		return nil, Match{}
	}
	for _, key := range candidates {
		if value, present := object[key]; present && isTarget(value) {
			return value, Match{OK: true, Key: key}
		}
	}
	for _, key := range fallbacks {
		if value, present := object[key]; present && isTarget(value) {
			return value, Match{OK: true, Key: key, Fallback: true}
		}
	}
	return nil, Match{}
}
