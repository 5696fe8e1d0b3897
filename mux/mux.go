// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package mux is the Request Multiplexer (C4): it assigns request ids
// and request handles, tracks one pending sink per in-flight request,
// dispatches inbound responses to the right sink, and enforces
// per-request timeouts. It sits between the service façade (C6) and
// the secure connection (C2)/transport (C3).
package mux

import (
	"context"
	"sync"
	"time"

	"github.com/absmach/opcua-client/errors"
	"github.com/absmach/opcua-client/logger"
	"github.com/absmach/opcua-client/transport"
	"github.com/absmach/opcua-client/ua"
	"github.com/absmach/opcua-client/uasc"
)

// Options tune one SendRequest/SendAsync call.
type Options struct {
	// MessageType defaults to ua.MessageTypeMessage (MSG) when zero.
	MessageType ua.MessageType
	// Timeout is the local deadline; zero means no local timeout (used
	// for Publish, per §5 of spec.md).
	Timeout time.Duration
}

type pendingEntry struct {
	resultCh chan result
	timer    *time.Timer
	callback func([]byte, error)
}

type result struct {
	body []byte
	err  error
}

// Mux is the request multiplexer for one secure channel. It is safe
// for concurrent use by any number of caller goroutines plus the
// single receive loop that calls Dispatch.
type Mux struct {
	mu            sync.Mutex
	nextRequestID uint32
	nextHandle    uint32
	pending       map[uint32]*pendingEntry
	zeroSink      func([]byte)

	conn *uasc.Connection
	tp   *transport.Transport
	log  logger.Logger
}

// New returns a Mux that chunks outbound bodies through conn and
// writes them via tp.
func New(conn *uasc.Connection, tp *transport.Transport, log logger.Logger) *Mux {
	if log == nil {
		log = logger.NewMock()
	}
	return &Mux{
		pending: make(map[uint32]*pendingEntry),
		conn:    conn,
		tp:      tp,
		log:     log,
	}
}

// SetZeroSink registers the handler for responses carrying request_id
// 0 — the unsolicited Hello/Acknowledge/Error handshake traffic C5
// owns (§4.4).
func (m *Mux) SetZeroSink(sink func(body []byte)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zeroSink = sink
}

// prepare assigns the next request id and request handle, and stamps
// the handle, timestamp and timeout hint into req's RequestHeader,
// keeping the fields the caller (facade/lifecycle) already filled in —
// typically AuthenticationToken.
func (m *Mux) prepare(req ua.Request, timeout time.Duration) (requestID uint32, handle uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextRequestID++
	requestID = m.nextRequestID
	m.nextHandle++
	handle = m.nextHandle

	h := req.GetHeader()
	h.Timestamp = time.Now().UTC()
	h.RequestHandle = handle
	if timeout > 0 {
		h.TimeoutHint = uint32(timeout.Milliseconds())
	}
	req.SetHeader(h)
	return requestID, handle
}

// releaseHandle reclaims handle after its request failed to reach the
// wire (encode/send error), but only if no concurrent caller has since
// advanced the counter past it — otherwise the handle is simply
// skipped rather than risking reuse by a later in-flight caller (§3,
// §9, §134: concurrent SendRequest/SendAsync callers never observe the
// same handle).
func (m *Mux) releaseHandle(handle uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nextHandle == handle {
		m.nextHandle--
	}
}

func (m *Mux) register(requestID uint32, entry *pendingEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[requestID] = entry
}

func (m *Mux) unregister(requestID uint32) (*pendingEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.pending[requestID]
	if ok {
		delete(m.pending, requestID)
	}
	return e, ok
}

// encodeAndSend chunks bodyBytes via uasc and writes them via the
// transport under the given message type.
func (m *Mux) encodeAndSend(messageType ua.MessageType, requestID uint32, req ua.Request) error {
	bodyBytes := ua.EncodeBody(req)
	chunks, err := m.conn.Outbound(messageType, requestID, bodyBytes)
	if err != nil {
		return err
	}
	outChunks := make([]transport.OutChunk, len(chunks))
	for i, c := range chunks {
		outChunks[i] = transport.OutChunk{ChunkType: c.ChunkType, Payload: c.Payload}
	}
	return m.tp.Send(messageType, outChunks)
}

// SendRequest assigns a request id and handle, sends req, and blocks
// until a response body arrives, the timeout elapses, the context is
// cancelled, or the transport closes.
func (m *Mux) SendRequest(ctx context.Context, req ua.Request, opts Options) ([]byte, error) {
	messageType := opts.MessageType
	if messageType == "" {
		messageType = ua.MessageTypeMessage
	}

	requestID, handle := m.prepare(req, opts.Timeout)

	entry := &pendingEntry{resultCh: make(chan result, 1)}
	if opts.Timeout > 0 {
		entry.timer = time.AfterFunc(opts.Timeout, func() {
			m.completeTimeout(requestID)
		})
	}
	m.register(requestID, entry)

	if err := m.encodeAndSend(messageType, requestID, req); err != nil {
		m.unregister(requestID)
		if entry.timer != nil {
			entry.timer.Stop()
		}
		m.releaseHandle(handle)
		return nil, err
	}

	select {
	case res := <-entry.resultCh:
		if entry.timer != nil {
			entry.timer.Stop()
		}
		return res.body, res.err
	case <-ctx.Done():
		m.Cancel(requestID)
		return nil, errors.ErrCancelled
	}
}

// SendAsync is SendRequest's non-blocking counterpart, used by the
// subscription/publish loop (C7) to keep N Publish requests
// self-refilling without tying up a goroutine per request.
func (m *Mux) SendAsync(req ua.Request, opts Options, callback func(body []byte, err error)) (uint32, error) {
	messageType := opts.MessageType
	if messageType == "" {
		messageType = ua.MessageTypeMessage
	}

	requestID, handle := m.prepare(req, opts.Timeout)

	entry := &pendingEntry{callback: callback}
	if opts.Timeout > 0 {
		entry.timer = time.AfterFunc(opts.Timeout, func() {
			m.completeTimeout(requestID)
		})
	}
	m.register(requestID, entry)

	if err := m.encodeAndSend(messageType, requestID, req); err != nil {
		m.unregister(requestID)
		if entry.timer != nil {
			entry.timer.Stop()
		}
		m.releaseHandle(handle)
		return 0, err
	}
	return requestID, nil
}

// SendNoResponse assigns a request id/handle and writes req without
// registering a pending sink, for message types that expect no reply
// (CloseSecureChannel, per §4.5).
func (m *Mux) SendNoResponse(messageType ua.MessageType, req ua.Request) error {
	requestID, handle := m.prepare(req, 0)
	if err := m.encodeAndSend(messageType, requestID, req); err != nil {
		m.releaseHandle(handle)
		return err
	}
	return nil
}

// Cancel removes requestID's pending entry without completing it; a
// response that arrives afterward is dropped silently by Dispatch
// (§4.4, §5).
func (m *Mux) Cancel(requestID uint32) {
	if entry, ok := m.unregister(requestID); ok && entry.timer != nil {
		entry.timer.Stop()
	}
}

func (m *Mux) completeTimeout(requestID uint32) {
	entry, ok := m.unregister(requestID)
	if !ok {
		return
	}
	m.complete(entry, result{err: errors.ErrTimeout})
}

func (m *Mux) complete(entry *pendingEntry, res result) {
	if entry.callback != nil {
		entry.callback(res.body, res.err)
		return
	}
	entry.resultCh <- res
}

// Dispatch routes one reassembled response body to its sink.
// request_id == 0 goes to the registered zero sink (C5's handshake
// traffic); otherwise the matching pending entry is popped and
// completed. A response with no matching entry is logged and dropped
// — a non-fatal protocol deviation, per §4.4.
func (m *Mux) Dispatch(requestID uint32, body []byte) {
	if requestID == 0 {
		m.mu.Lock()
		sink := m.zeroSink
		m.mu.Unlock()
		if sink != nil {
			sink(body)
			return
		}
		m.log.Warn("mux: no zero sink registered for unsolicited response")
		return
	}

	entry, ok := m.unregister(requestID)
	if !ok {
		m.log.Warn("mux: response for unknown request id, dropped")
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	m.complete(entry, result{body: body})
}

// DispatchAbort routes an aborted chunk stream as a failure for its
// request id (the uasc.Connection.Inbound Aborted result).
func (m *Mux) DispatchAbort(requestID uint32, status ua.StatusCode) {
	entry, ok := m.unregister(requestID)
	if !ok {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	m.complete(entry, result{err: status})
}

// CloseAll fails every pending request with cause and clears the
// pending map. Called once by the owner when the transport tears down
// (§4.3: "Disconnect at any point delivers TransportClosed to every
// pending request sink").
func (m *Mux) CloseAll(cause error) {
	m.mu.Lock()
	pending := m.pending
	m.pending = make(map[uint32]*pendingEntry)
	m.mu.Unlock()

	for _, entry := range pending {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		m.complete(entry, result{err: cause})
	}
}

// CheckAnswer is the §4.4 check_answer operation: it peeks the
// leading type id without a full decode; a ServiceFault response is
// turned into an error carrying its ServiceResult, otherwise the body
// is returned unchanged for the caller's typed decode.
func CheckAnswer(body []byte) ([]byte, error) {
	typeID, err := ua.PeekTypeID(body)
	if err != nil {
		return nil, err
	}
	if typeID != ua.ServiceFaultTypeID {
		return body, nil
	}
	b, err := ua.DecodeBody(body)
	if err != nil {
		return nil, err
	}
	fault := b.(*ua.ServiceFault)
	return nil, errors.Wrap(errors.ErrServiceFault, fault.Header.ServiceResult.Check())
}
