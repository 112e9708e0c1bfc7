// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package hostlink

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultCallTimeout bounds event-channel calls when the bridge's
// CallTimeout field is zero.
const DefaultCallTimeout = 5 * time.Second

// ResponseSuffix is appended to a method name to form the correlated
// response event on the legacy channel. This is the single canonical
// correlation contract; per-call timers handle hosts that never
// answer.
const ResponseSuffix = ".response"

// MethodTable is the preferred host capability: a live table of host
// operations invoked directly. Invoke must honor the Params encoding
// when binding arguments and may block until the host has executed the
// operation or ctx is done.
type MethodTable interface {
	Invoke(ctx context.Context, method string, params Params) (any, error)
}

// EventChannel is the legacy host capability: named events in both
// directions. Implementations must be safe for concurrent use. Listen
// registers a handler for an inbound event and returns a function that
// removes exactly that registration.
type EventChannel interface {
	Emit(event string, payload any) error
	Listen(event string, handler func(payload any)) (cancel func())
}

// Capability identifies which transport mechanism the host currently
// exposes. Probed fresh at every call and subscribe, never cached
// permanently: the host surface may attach after the panel starts.
type Capability int

const (
	// CapabilityUnavailable means no transport is attached.
	CapabilityUnavailable Capability = iota
	// CapabilityMethodTable means direct invocation is available.
	CapabilityMethodTable
	// CapabilityEventChannel means only the legacy channel is
	// available.
	CapabilityEventChannel
)

func (c Capability) String() string {
	switch c {
	case CapabilityMethodTable:
		return "method table"
	case CapabilityEventChannel:
		return "event channel"
	default:
		return "unavailable"
	}
}

// Handler receives a raw host push payload. Payloads are not
// normalized by the bridge; run them through the envelope package.
type Handler func(payload any)

// subscriberEntry pairs a handler with the identity its Subscription
// cancels by. Entries stay in registration order.
type subscriberEntry struct {
	id      uint64
	handler Handler
}

// Bridge invokes host operations and fans host pushes out to
// subscribers, independent of which transport the host currently
// offers.
//
// The zero value is usable. Bridge is safe for concurrent use, and
// reentrant: a Call issued from inside a push handler behaves exactly
// like one issued anywhere else, because no internal lock is held
// while handlers or host transports run.
type Bridge struct {
	// CallTimeout bounds each event-channel call. Zero means
	// DefaultCallTimeout. Method-table calls are bounded by their
	// context instead.
	CallTimeout time.Duration

	// Logger receives structured log output. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	mu       sync.Mutex
	methods  MethodTable
	channel  EventChannel
	nextID   uint64
	handlers map[string][]subscriberEntry
	wiring   map[string]func() // per-event channel listener teardown
}

func (b *Bridge) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// AttachMethodTable installs (or replaces) the host's method table.
// Safe to call at any point in the panel's lifetime.
func (b *Bridge) AttachMethodTable(table MethodTable) {
	b.mu.Lock()
	b.methods = table
	b.mu.Unlock()
	b.logger().Info("host method table attached")
}

// AttachEventChannel installs (or replaces) the host's event channel.
// Event names subscribed before the channel existed are wired to it
// immediately, so early subscribers need no re-registration.
func (b *Bridge) AttachEventChannel(channel EventChannel) {
	b.mu.Lock()
	b.channel = channel
	for event := range b.handlers {
		b.wireEventLocked(event)
	}
	b.mu.Unlock()
	b.logger().Info("host event channel attached")
}

// Capability reports which transport mechanism is currently exposed.
// Re-evaluated on every invocation.
func (b *Bridge) Capability() Capability {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.methods != nil:
		return CapabilityMethodTable
	case b.channel != nil:
		return CapabilityEventChannel
	default:
		return CapabilityUnavailable
	}
}

// probe snapshots the attached transports for one call.
func (b *Bridge) probe() (MethodTable, EventChannel) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.methods, b.channel
}

// Call invokes a named host operation and returns its result.
// Transport mechanisms are tried once per call in preference order:
// the method table, then the event channel. With neither attached the
// call fails immediately with *TransportUnavailableError. Host-side
// failures surface as *RemoteError; event-channel correlation expiry
// as *CallTimeoutError. The bridge never retries — recovery belongs to
// the caller.
func (b *Bridge) Call(ctx context.Context, method string, params Params) (any, error) {
	methods, channel := b.probe()
	switch {
	case methods != nil:
		b.logger().Debug("invoking host method", "method", method, "params", params.String(), "via", CapabilityMethodTable)
		result, err := methods.Invoke(ctx, method, params)
		if err != nil {
			return nil, &RemoteError{Method: method, Message: err.Error(), Err: err}
		}
		return decodeCallResult(method, result)
	case channel != nil:
		b.logger().Debug("invoking host method", "method", method, "params", params.String(), "via", CapabilityEventChannel)
		return b.callOverChannel(ctx, channel, method, params)
	default:
		return nil, &TransportUnavailableError{Method: method}
	}
}

// callOverChannel performs one legacy-channel call: emit the call as
// an event named after the method, then wait for the correlated
// "<method>.response" event or the per-call timeout. The pending call
// resolves exactly once — the buffered response slot takes the first
// delivery and drops the rest — and its listener is removed on every
// exit path, so an expired call leaks nothing.
func (b *Bridge) callOverChannel(ctx context.Context, channel EventChannel, method string, params Params) (any, error) {
	timeout := b.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	responses := make(chan any, 1)
	cancel := channel.Listen(method+ResponseSuffix, func(payload any) {
		select {
		case responses <- payload:
		default:
		}
	})
	defer cancel()

	if err := channel.Emit(method, params.wireMap()); err != nil {
		return nil, fmt.Errorf("hostlink: emitting call %q: %w", method, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case payload := <-responses:
		return decodeCallResult(method, payload)
	case <-timer.C:
		b.logger().Warn("host call timed out", "method", method, "timeout", timeout)
		return nil, &CallTimeoutError{Method: method, Timeout: timeout}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// decodeCallResult interprets a host result. Hosts answer operations
// with a result envelope {ok, message, value}; ok=false becomes a
// *RemoteError carrying the host's message unmodified. Anything that
// is not a result envelope is the value itself (the hierarchy query
// returns its array directly).
func decodeCallResult(method string, payload any) (any, error) {
	object, isObject := payload.(map[string]any)
	if !isObject {
		return payload, nil
	}
	okValue, present := object["ok"]
	if !present {
		return payload, nil
	}
	if success, _ := okValue.(bool); success {
		if value, hasValue := object["value"]; hasValue {
			return value, nil
		}
		return object, nil
	}
	message, _ := object["message"].(string)
	if message == "" {
		message = "host reported failure without a message"
	}
	return nil, &RemoteError{Method: method, Message: message}
}

// Subscription is one registered push handler. Cancel removes it; when
// the last subscription for an event is cancelled, the underlying
// channel listener for that event is torn down too.
type Subscription struct {
	bridge *Bridge
	event  string
	id     uint64
}

// Subscribe registers a handler for a host-pushed event. Handlers for
// the same event fire in registration order. The underlying channel
// listener is installed exactly once per event name, on first
// subscription — and if no channel is attached yet, on channel attach,
// so subscribing before the host surface exists is legal.
func (b *Bridge) Subscribe(event string, handler Handler) *Subscription {
	b.mu.Lock()
	if b.handlers == nil {
		b.handlers = make(map[string][]subscriberEntry)
	}
	b.nextID++
	id := b.nextID
	b.handlers[event] = append(b.handlers[event], subscriberEntry{id: id, handler: handler})
	count := len(b.handlers[event])
	b.wireEventLocked(event)
	b.mu.Unlock()

	b.logger().Debug("subscribed", "event", event, "handlers", count)
	return &Subscription{bridge: b, event: event, id: id}
}

// wireEventLocked installs the channel listener for an event if a
// channel is attached and the event is not already wired. Caller holds
// b.mu.
func (b *Bridge) wireEventLocked(event string) {
	if b.channel == nil {
		return
	}
	if b.wiring == nil {
		b.wiring = make(map[string]func())
	}
	if _, wired := b.wiring[event]; wired {
		return
	}
	b.wiring[event] = b.channel.Listen(event, func(payload any) {
		b.Notify(event, payload)
	})
}

// Notify delivers a host push to all subscribers of the event, in
// registration order, on the calling goroutine. This is the native
// push path for in-process method-table hosts; channel-attached hosts
// arrive here through the per-event listener. No bridge lock is held
// while handlers run, so handlers may call back into the bridge.
func (b *Bridge) Notify(event string, payload any) {
	b.mu.Lock()
	entries := append([]subscriberEntry(nil), b.handlers[event]...)
	b.mu.Unlock()

	if len(entries) == 0 {
		b.logger().Debug("push with no subscribers", "event", event)
		return
	}
	for _, entry := range entries {
		entry.handler(payload)
	}
}

// Cancel removes the subscription. Idempotent. When the event's
// handler set becomes empty its channel listener is removed.
func (s *Subscription) Cancel() {
	if s.bridge == nil {
		return
	}
	b := s.bridge
	s.bridge = nil

	var unwire func()
	b.mu.Lock()
	entries := b.handlers[s.event]
	for index, entry := range entries {
		if entry.id == s.id {
			entries = append(entries[:index], entries[index+1:]...)
			break
		}
	}
	if len(entries) == 0 {
		delete(b.handlers, s.event)
		unwire = b.wiring[s.event]
		delete(b.wiring, s.event)
	} else {
		b.handlers[s.event] = entries
	}
	b.mu.Unlock()

	if unwire != nil {
		unwire()
	}
}
