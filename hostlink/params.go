// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package hostlink

import "fmt"

// paramsKind discriminates the four call-parameter encodings.
type paramsKind int

const (
	paramsNone paramsKind = iota
	paramsNull
	paramsNamed
	paramsPositional
)

// Params carries the parameters of one host call. The host binds
// arguments differently for each of the four encodings, so the
// distinction must survive every transport exactly:
//
//   - NoParams: the host method is invoked with no arguments at all.
//   - Null: the host method receives a single argument whose value is
//     "no value". Not the same as omission.
//   - Named: keyword arguments.
//   - Positional: positional arguments.
//
// The zero value is NoParams.
type Params struct {
	kind       paramsKind
	named      map[string]any
	positional []any
}

// NoParams invokes the host method with zero arguments.
func NoParams() Params {
	return Params{kind: paramsNone}
}

// Null invokes the host method with a single "no value" argument.
func Null() Params {
	return Params{kind: paramsNull}
}

// Named invokes the host method with keyword arguments.
func Named(arguments map[string]any) Params {
	return Params{kind: paramsNamed, named: arguments}
}

// Positional invokes the host method with positional arguments. An
// empty call is a real empty argument list, not NoParams.
func Positional(values ...any) Params {
	if values == nil {
		values = []any{}
	}
	return Params{kind: paramsPositional, positional: values}
}

// IsNone reports whether the call carries no parameters at all.
func (p Params) IsNone() bool {
	return p.kind == paramsNone
}

// IsNull reports whether the call carries the explicit "no value"
// argument.
func (p Params) IsNull() bool {
	return p.kind == paramsNull
}

// NamedArgs returns the keyword arguments. ok is false for the other
// encodings.
func (p Params) NamedArgs() (arguments map[string]any, ok bool) {
	return p.named, p.kind == paramsNamed
}

// PositionalArgs returns the positional arguments. ok is false for the
// other encodings.
func (p Params) PositionalArgs() (values []any, ok bool) {
	return p.positional, p.kind == paramsPositional
}

func (p Params) String() string {
	switch p.kind {
	case paramsNull:
		return "null"
	case paramsNamed:
		return fmt.Sprintf("named(%d)", len(p.named))
	case paramsPositional:
		return fmt.Sprintf("positional(%d)", len(p.positional))
	default:
		return "none"
	}
}

// Wire encoding of Params for the legacy event channel. The kind
// travels explicitly because the host cannot otherwise distinguish an
// omitted parameter list from an explicit null.
const (
	wireKindNone       = "none"
	wireKindNull       = "null"
	wireKindNamed      = "named"
	wireKindPositional = "positional"
)

// wireMap returns the channel payload for the call event.
func (p Params) wireMap() map[string]any {
	switch p.kind {
	case paramsNull:
		return map[string]any{"kind": wireKindNull}
	case paramsNamed:
		return map[string]any{"kind": wireKindNamed, "named": p.named}
	case paramsPositional:
		return map[string]any{"kind": wireKindPositional, "positional": p.positional}
	default:
		return map[string]any{"kind": wireKindNone}
	}
}

// DecodeParams reconstructs Params from a call event payload. Host
// implementations that serve the event channel use this to recover the
// caller's argument-binding intent. An unrecognized payload shape is
// an error rather than a silent NoParams, so binding bugs surface at
// the boundary.
func DecodeParams(payload any) (Params, error) {
	if payload == nil {
		return NoParams(), nil
	}
	object, ok := payload.(map[string]any)
	if !ok {
		return Params{}, fmt.Errorf("hostlink: call payload is %T, want object", payload)
	}
	kind, _ := object["kind"].(string)
	switch kind {
	case wireKindNone:
		return NoParams(), nil
	case wireKindNull:
		return Null(), nil
	case wireKindNamed:
		arguments, ok := object["named"].(map[string]any)
		if !ok {
			return Params{}, fmt.Errorf("hostlink: named arguments are %T, want object", object["named"])
		}
		return Named(arguments), nil
	case wireKindPositional:
		values, ok := object["positional"].([]any)
		if !ok {
			return Params{}, fmt.Errorf("hostlink: positional arguments are %T, want array", object["positional"])
		}
		return Positional(values...), nil
	default:
		return Params{}, fmt.Errorf("hostlink: unknown params kind %q", kind)
	}
}
