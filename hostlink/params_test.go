// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package hostlink

import (
	"reflect"
	"testing"
)

func TestParamsWireRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"none", NoParams()},
		{"null", Null()},
		{"named", Named(map[string]any{"node_name": "pCube1", "visible": true})},
		{"positional", Positional("pCube1", false)},
		{"positional empty", Positional()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decoded, err := DecodeParams(test.params.wireMap())
			if err != nil {
				t.Fatalf("DecodeParams: %v", err)
			}
			if !reflect.DeepEqual(decoded, test.params) {
				t.Errorf("round trip changed params: %v -> %v", test.params, decoded)
			}
		})
	}
}

// The three explicit shapes must stay distinguishable: an absent
// argument list, an explicit null, and an empty positional list are
// different calls on the wire.
func TestParamsShapesAreDistinct(t *testing.T) {
	none := NoParams()
	null := Null()
	empty := Positional()

	if !none.IsNone() || none.IsNull() {
		t.Error("NoParams misreports its shape")
	}
	if !null.IsNull() || null.IsNone() {
		t.Error("Null misreports its shape")
	}
	if empty.IsNone() || empty.IsNull() {
		t.Error("empty Positional collapsed into none or null")
	}
	if args, ok := empty.PositionalArgs(); !ok || args == nil || len(args) != 0 {
		t.Errorf("empty Positional lost its empty list: %v ok=%v", args, ok)
	}

	kinds := map[string]bool{}
	for _, params := range []Params{none, null, empty} {
		kind, _ := params.wireMap()["kind"].(string)
		kinds[kind] = true
	}
	if len(kinds) != 3 {
		t.Errorf("wire kinds collide: %v", kinds)
	}
}

func TestNamedArgsOnlyOnNamed(t *testing.T) {
	if _, ok := NoParams().NamedArgs(); ok {
		t.Error("NamedArgs reported ok on none")
	}
	if _, ok := Positional(1).NamedArgs(); ok {
		t.Error("NamedArgs reported ok on positional")
	}
	if _, ok := Null().PositionalArgs(); ok {
		t.Error("PositionalArgs reported ok on null")
	}
}

func TestDecodeParamsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"not an object", []any{"kind"}},
		{"missing kind", map[string]any{"named": map[string]any{}}},
		{"unknown kind", map[string]any{"kind": "variadic"}},
		{"named without map", map[string]any{"kind": "named", "named": "oops"}},
		{"positional without list", map[string]any{"kind": "positional", "positional": 7}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := DecodeParams(test.payload); err == nil {
				t.Errorf("DecodeParams(%v) accepted malformed input", test.payload)
			}
		})
	}
}

func TestParamsString(t *testing.T) {
	tests := []struct {
		params Params
		want   string
	}{
		{NoParams(), "none"},
		{Null(), "null"},
		{Named(map[string]any{"a": 1}), "named(1)"},
		{Positional("x", "y"), "positional(2)"},
	}
	for _, test := range tests {
		if got := test.params.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}
