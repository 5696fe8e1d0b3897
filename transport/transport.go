// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package transport owns the TCP connection to an OPC UA server: it
// reads and writes whole frames, leaving chunk/security interpretation
// to uasc and request correlation to mux. Reads go through a buffered
// reader so that a short requested read never discards bytes delivered
// past its boundary by the underlying stream; any excess simply stays
// in the buffer for the next read, the Go equivalent of the Python
// source's `_leftover_chunk` handling. Writes are serialized so the
// chunks of one logical message are appended to the stream atomically,
// never interleaved with another message's chunks (§4.3).
package transport

import (
	"bufio"
	"context"
	"io"
	"net"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/absmach/opcua-client/errors"
	"github.com/absmach/opcua-client/ua"
)

// ErrClosed is returned by Send/ReadFrame after the transport has torn
// down, and is the sentinel every pending caller and the publish loop
// is failed with when the connection drops (§4.3, §7 of spec.md).
var ErrClosed = errors.New("transport: closed")

// Dialer opens the underlying byte stream. Production code dials a
// real TCP socket; tests substitute internal/transporttest's in-memory
// pipe so uasc/mux/lifecycle can be exercised without a network.
type Dialer func(ctx context.Context, network, address string) (net.Conn, error)

// DefaultDialer dials a real TCP connection.
func DefaultDialer(ctx context.Context, network, address string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, network, address)
}

// Frame is one fully-read transport frame: the header plus the
// payload bytes that follow it (security header, sequence header, and
// ciphertext/plaintext body, still opaque to this package).
type Frame struct {
	Header  ua.TransportHeader
	Payload []byte
}

// OutChunk is one chunk of an outbound logical message, already
// encoded by uasc (security header + sequence header + body). Send
// prepends the 8-byte transport header and writes it to the wire.
type OutChunk struct {
	ChunkType ua.ChunkType
	Payload   []byte
}

// Transport owns one connection's byte stream.
type Transport struct {
	conn net.Conn
	r    *bufio.Reader

	writeMu sync.Mutex

	mu       sync.Mutex
	closed   bool
	closeErr error
}

// Connect dials address using dial (DefaultDialer for real use) and
// returns a Transport ready for Hello/Ack.
func Connect(ctx context.Context, dial Dialer, network, address string) (*Transport, error) {
	if dial == nil {
		dial = DefaultDialer
	}
	conn, err := dial(ctx, network, address)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "transport: dial %s", address)
	}
	return &Transport{conn: conn, r: bufio.NewReaderSize(conn, 4096)}, nil
}

// FromConn wraps an already-established connection (used by tests and
// by callers that manage dialing themselves).
func FromConn(conn net.Conn) *Transport {
	return &Transport{conn: conn, r: bufio.NewReaderSize(conn, 4096)}
}

// readFull reads exactly n bytes, blocking until they are available,
// using the buffered reader so any bytes the kernel handed back beyond
// what was asked for on a prior call remain available here.
func (t *Transport) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(t.r, buf); err != nil {
		t.fail(err)
		return nil, t.closeErrValue()
	}
	return buf, nil
}

// ReadFrame blocks until one complete transport frame has arrived.
// Callers (lifecycle/mux's receive loop) call this in a tight loop.
func (t *Transport) ReadFrame() (Frame, error) {
	raw, err := t.readFull(ua.TransportHeaderSize)
	if err != nil {
		return Frame{}, err
	}
	header, err := ua.DecodeTransportHeader(raw)
	if err != nil {
		t.fail(err)
		return Frame{}, err
	}
	if header.Length < ua.TransportHeaderSize {
		t.fail(ua.ErrInvalidEncoding)
		return Frame{}, ua.ErrInvalidEncoding
	}
	payload, err := t.readFull(int(header.Length) - ua.TransportHeaderSize)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Header: header, Payload: payload}, nil
}

// Send writes every chunk of one logical message to the wire under a
// single lock acquisition, so no other Send interleaves its bytes
// in between (§4.3, invariant 3 of §8).
func (t *Transport) Send(messageType ua.MessageType, chunks []OutChunk) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if t.isClosed() {
		return ErrClosed
	}
	for _, c := range chunks {
		length := ua.TransportHeaderSize + len(c.Payload)
		header := ua.TransportHeader{MessageType: messageType, ChunkType: c.ChunkType, Length: uint32(length)}
		enc := ua.NewEncoder()
		header.Encode(enc)
		buf := append(enc.Bytes(), c.Payload...)
		if _, err := t.conn.Write(buf); err != nil {
			t.fail(err)
			return pkgerrors.Wrap(err, "transport: write")
		}
	}
	return nil
}

// Close tears down the connection. Safe to call more than once and
// concurrently with ReadFrame/Send, both of which then fail with
// ErrClosed.
func (t *Transport) Close() error {
	t.mu.Lock()
	already := t.closed
	t.closed = true
	if t.closeErr == nil {
		t.closeErr = ErrClosed
	}
	t.mu.Unlock()
	if already {
		return nil
	}
	return t.conn.Close()
}

// isClosed reports whether the transport has already failed or been
// closed.
func (t *Transport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// fail records the first error that tore the connection down and
// closes the socket; subsequent operations observe ErrClosed wrapping
// that original cause.
func (t *Transport) fail(cause error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.closeErr = errors.Wrap(ErrClosed, cause)
	t.mu.Unlock()
	_ = t.conn.Close()
}

// closeErrValue returns the recorded close reason, or ErrClosed if
// none was recorded yet.
func (t *Transport) closeErrValue() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closeErr != nil {
		return t.closeErr
	}
	return ErrClosed
}
