// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"reflect"
	"testing"
)

func TestArrayDirect(t *testing.T) {
	payload := []any{map[string]any{"name": "pCube1", "type": "transform"}}
	got, match := Array(payload, "nodes")
	if !match.OK || match.Key != "" || match.Fallback {
		t.Fatalf("direct array: unexpected match %+v", match)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("direct array: got %v, want payload unchanged", got)
	}
}

func TestArrayCandidateKeys(t *testing.T) {
	sequence := []any{map[string]any{"name": "n1", "type": "x"}}

	tests := []struct {
		name         string
		payload      any
		candidates   []string
		want         []any
		wantKey      string
		wantFallback bool
	}{
		{
			name:       "explicit key first in candidate order",
			payload:    map[string]any{"nodes": sequence},
			candidates: []string{"nodes", "value"},
			want:       sequence,
			wantKey:    "nodes",
		},
		{
			name:       "second candidate when first absent",
			payload:    map[string]any{"value": sequence},
			candidates: []string{"nodes", "value"},
			want:       sequence,
			wantKey:    "value",
		},
		{
			name: "candidate preferred over fallback when both present",
			payload: map[string]any{
				"nodes": sequence,
				"value": []any{"decoy"},
			},
			candidates: []string{"nodes"},
			want:       sequence,
			wantKey:    "nodes",
		},
		{
			name: "candidate skipped when value is not a sequence",
			payload: map[string]any{
				"nodes": "not a sequence",
				"value": sequence,
			},
			candidates:   []string{"nodes"},
			want:         sequence,
			wantKey:      "value",
			wantFallback: true,
		},
		{
			name:         "fallback key when no candidates match",
			payload:      map[string]any{"items": sequence},
			candidates:   []string{"nodes"},
			want:         sequence,
			wantKey:      "items",
			wantFallback: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, match := Array(test.payload, test.candidates...)
			if !match.OK {
				t.Fatalf("match not OK: %+v", match)
			}
			if match.Key != test.wantKey || match.Fallback != test.wantFallback {
				t.Errorf("match = %+v, want key %q fallback %v", match, test.wantKey, test.wantFallback)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("value = %v, want %v", got, test.want)
			}
		})
	}
}

func TestEmptyValuesNeverError(t *testing.T) {
	// Payloads matching nothing degrade to the type's empty value.
	unmatched := []any{
		map[string]any{},
		map[string]any{"unrelated": 42},
		"bare string for array extraction",
		nil,
		12.5,
	}

	for _, payload := range unmatched {
		if got, match := Array(payload, "nodes"); match.OK || len(got) != 0 {
			t.Errorf("Array(%v) = %v, %+v; want empty", payload, got, match)
		}
	}

	if got, match := String(map[string]any{}, "node"); got != "" || match.OK {
		t.Errorf("String on empty object = %q, %+v; want empty", got, match)
	}
	if got, match := String(nil, "node"); got != "" || match.OK {
		t.Errorf("String(nil) = %q, %+v; want empty", got, match)
	}

	got, match := Object(12, "detail")
	if match.OK || got == nil || len(got) != 0 {
		t.Errorf("Object(12) = %v, %+v; want empty non-nil map", got, match)
	}
}

func TestStringExtraction(t *testing.T) {
	if got, match := String("n1", "node", "name"); got != "n1" || !match.OK || match.Key != "" {
		t.Fatalf("direct string: got %q, %+v", got, match)
	}
	if got, match := String(map[string]any{"node": "pSphere1"}, "node"); got != "pSphere1" || match.Key != "node" || match.Fallback {
		t.Fatalf("candidate string: got %q, %+v", got, match)
	}
	if got, match := String(map[string]any{"message": "done"}, "node"); got != "done" || !match.Fallback {
		t.Fatalf("fallback string: got %q, %+v", got, match)
	}
}

func TestObjectExtraction(t *testing.T) {
	inner := map[string]any{"ok": true, "message": "Selected: pCube1"}

	got, match := Object(map[string]any{"result": inner}, "result")
	if !match.OK || match.Key != "result" || match.Fallback {
		t.Fatalf("candidate object: match %+v", match)
	}
	if !reflect.DeepEqual(got, inner) {
		t.Fatalf("candidate object: got %v", got)
	}

	// A wrapper under a fallback key yields the inner object, not the
	// wrapper itself.
	got, match = Object(map[string]any{"value": inner}, "result")
	if !match.Fallback || match.Key != "value" {
		t.Fatalf("fallback object: match %+v", match)
	}
	if !reflect.DeepEqual(got, inner) {
		t.Fatalf("fallback object: got %v", got)
	}

	// An object with no wrapper keys is its own value.
	got, match = Object(inner, "result")
	if !match.OK || match.Key != "" {
		t.Fatalf("direct object: match %+v", match)
	}
	if !reflect.DeepEqual(got, inner) {
		t.Fatalf("direct object: got %v", got)
	}
}

func TestExtractionIsPure(t *testing.T) {
	payload := map[string]any{"value": []any{"a", "b"}}
	first, firstMatch := Array(payload, "nodes", "value")
	second, secondMatch := Array(payload, "nodes", "value")
	if !reflect.DeepEqual(first, second) || firstMatch != secondMatch {
		t.Fatalf("repeated extraction disagrees: %v/%+v vs %v/%+v", first, firstMatch, second, secondMatch)
	}
	if _, stillThere := payload["value"]; !stillThere {
		t.Fatal("extraction mutated the payload")
	}
}
