// Copyright 2026 The Scenepanel Authors
// SPDX-License-Identifier: Apache-2.0

package hostlink

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/scenepanel/scenepanel/lib/codec"
)

// dialTimeout is the maximum time to wait for a connection to the
// host's event socket. This covers only the connect phase; individual
// calls are bounded by the bridge's call timeout.
const dialTimeout = 5 * time.Second

// frame is the socket wire envelope: an event name and a
// deferred-decode payload. Both directions use the same shape.
type frame struct {
	Event   string           `cbor:"event"`
	Payload codec.RawMessage `cbor:"payload,omitempty"`
}

// socketListener pairs a handler with the identity its cancel func
// removes by. Kept in a slice so dispatch preserves registration
// order.
type socketListener struct {
	id      uint64
	event   string
	handler func(payload any)
}

// SocketChannel is the concrete EventChannel: CBOR frames over a
// stream connection to the host, typically a Unix socket the host
// exposes next to its UI embedding surface. A background goroutine
// reads inbound frames and dispatches them to listeners; Emit writes
// outbound frames. A malformed inbound payload is logged and skipped —
// one bad push must not block the stream.
type SocketChannel struct {
	logger *slog.Logger
	conn   net.Conn

	// encodeMu serializes writers; the CBOR encoder is not safe for
	// concurrent Encode calls.
	encodeMu sync.Mutex
	encoder  *codec.Encoder

	mu        sync.Mutex
	listeners []socketListener
	nextID    uint64
	closed    bool

	done chan struct{}
}

// DialSocket connects to the host's event socket and starts the read
// loop. If logger is nil, slog.Default() is used.
func DialSocket(path string, logger *slog.Logger) (*SocketChannel, error) {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("hostlink: host socket %s not reachable: %w", path, err)
	}
	return NewSocketChannel(conn, logger), nil
}

// NewSocketChannel wraps an established connection. Useful for tests
// (net.Pipe) and for hosts that hand the panel a pre-connected stream.
func NewSocketChannel(conn net.Conn, logger *slog.Logger) *SocketChannel {
	if logger == nil {
		logger = slog.Default()
	}
	channel := &SocketChannel{
		logger:  logger,
		conn:    conn,
		encoder: codec.NewEncoder(conn),
		done:    make(chan struct{}),
	}
	go channel.readLoop()
	return channel
}

// Emit sends a named event to the host.
func (c *SocketChannel) Emit(event string, payload any) error {
	raw, err := codec.Marshal(payload)
	if err != nil {
		return fmt.Errorf("hostlink: encoding payload for %q: %w", event, err)
	}

	c.encodeMu.Lock()
	defer c.encodeMu.Unlock()
	if err := c.encoder.Encode(frame{Event: event, Payload: raw}); err != nil {
		return fmt.Errorf("hostlink: writing frame for %q: %w", event, err)
	}
	return nil
}

// Listen registers a handler for an inbound event. The returned cancel
// removes exactly this registration.
func (c *SocketChannel) Listen(event string, handler func(payload any)) (cancel func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, socketListener{id: id, event: event, handler: handler})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for index, listener := range c.listeners {
			if listener.id == id {
				c.listeners = append(c.listeners[:index], c.listeners[index+1:]...)
				return
			}
		}
	}
}

// Close shuts the connection down. The read loop exits and Done is
// closed.
func (c *SocketChannel) Close() error {
	c.mu.Lock()
	alreadyClosed := c.closed
	c.closed = true
	c.mu.Unlock()
	if alreadyClosed {
		return nil
	}
	return c.conn.Close()
}

// Done is closed when the read loop has exited, whether by Close or by
// a transport failure.
func (c *SocketChannel) Done() <-chan struct{} {
	return c.done
}

// readLoop decodes inbound frames and dispatches them until the
// connection ends.
func (c *SocketChannel) readLoop() {
	defer close(c.done)

	decoder := codec.NewDecoder(c.conn)
	for {
		var inbound frame
		if err := decoder.Decode(&inbound); err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if closed || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				c.logger.Debug("host channel closed")
			} else {
				c.logger.Error("host channel read failed", "error", err)
			}
			return
		}

		var payload any
		if len(inbound.Payload) > 0 {
			if err := codec.Unmarshal(inbound.Payload, &payload); err != nil {
				diagnostic, _ := codec.Diagnose(inbound.Payload)
				c.logger.Warn("malformed frame payload, skipping",
					"event", inbound.Event,
					"diagnostic", diagnostic,
					"error", err,
				)
				continue
			}
		}
		c.dispatch(inbound.Event, payload)
	}
}

// dispatch calls every listener registered for the event, in
// registration order, without holding the listener lock.
func (c *SocketChannel) dispatch(event string, payload any) {
	c.mu.Lock()
	var matched []func(payload any)
	for _, listener := range c.listeners {
		if listener.event == event {
			matched = append(matched, listener.handler)
		}
	}
	c.mu.Unlock()

	for _, handler := range matched {
		handler(payload)
	}
}
