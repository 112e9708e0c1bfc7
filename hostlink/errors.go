// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package hostlink

import (
	"errors"
	"fmt"
	"time"
)

// TransportUnavailableError is returned when neither a method table
// nor an event channel is attached at call time. The call fails
// immediately — it never hangs waiting for a capability to appear —
// and the bridge never retries on its own. Callers typically log it
// and surface a degraded-state indicator.
type TransportUnavailableError struct {
	// Method is the host operation that could not be invoked.
	Method string
}

func (e *TransportUnavailableError) Error() string {
	return fmt.Sprintf("hostlink: transport unavailable for %q: no method table or event channel attached", e.Method)
}

// CallTimeoutError is returned when an event-channel call receives no
// correlated response within the configured timeout. The residual
// response listener is deregistered before the error is returned.
type CallTimeoutError struct {
	Method  string
	Timeout time.Duration
}

func (e *CallTimeoutError) Error() string {
	return fmt.Sprintf("hostlink: call %q timed out after %s", e.Method, e.Timeout)
}

// RemoteError carries a failure reported by the host itself — a
// method-table invocation that returned an error, or a result envelope
// with ok=false. The host's message passes through unmodified.
type RemoteError struct {
	Method  string
	Message string

	// Err is the underlying method-table error, when there is one.
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("hostlink: remote error from %q: %s", e.Method, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsTransportUnavailable reports whether err is (or wraps) a
// TransportUnavailableError.
func IsTransportUnavailable(err error) bool {
	var unavailable *TransportUnavailableError
	return errors.As(err, &unavailable)
}

// IsCallTimeout reports whether err is (or wraps) a CallTimeoutError.
func IsCallTimeout(err error) bool {
	var timeout *CallTimeoutError
	return errors.As(err, &timeout)
}
