// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package uasc implements the Secure Connection layer (C2): it holds
// the channel's chunking parameters and sequence-number space, splits
// outbound logical messages into chunks, and reassembles inbound
// chunks into complete bodies, applying the configured SecurityPolicy
// along the way.
package uasc

import (
	"sync"

	"github.com/absmach/opcua-client/errors"
	"github.com/absmach/opcua-client/ua"
)

// ErrProtocol and ErrSecurity classify a receive-path failure as
// connection fatal; both are the shared sentinels from the errors
// package so a dispatch layer can Contains() against the same values
// regardless of which component raised them.
var (
	ErrProtocol = errors.ErrProtocol
	ErrSecurity = errors.ErrSecurity
)

const (
	// sequenceNumberWrap is the value local_seq wraps to after reaching
	// the maximum uint32, per §4.2.
	sequenceNumberWrap uint32 = 1
	maxUint32          uint32 = 0xFFFFFFFF
)

// Token pairs a symmetric security token id with the channel id it was
// issued under. During a renewal window both the previous and current
// token are accepted on inbound chunks (§4.2, §4.5, §9).
type Token struct {
	ChannelID uint32
	TokenID   uint32
}

// reassembly accumulates the chunk bytes for one in-flight request id
// until the final (F) chunk arrives.
type reassembly struct {
	body []byte
}

// Connection is the Secure Connection (C2). It is safe for concurrent
// use: the receive path (single goroutine, per §5) calls Inbound while
// the send path (any number of caller goroutines) calls Outbound; both
// touch the sequence counters and reassembly map under mu.
type Connection struct {
	mu sync.Mutex

	policy ua.SecurityPolicy

	current  Token
	previous Token
	haveToken bool

	localSeq  uint32
	remoteSeq uint32
	haveRemoteSeq bool

	sendBufferSize uint32

	pending map[uint32]*reassembly
}

// New returns a Connection with no committed token, using policy for
// sign/verify/encrypt/decrypt. sendBufferSize bounds the plaintext
// payload per outbound chunk and is normally the value negotiated
// during Hello/Acknowledge.
func New(policy ua.SecurityPolicy, sendBufferSize uint32) *Connection {
	if policy == nil {
		policy = ua.NonePolicy{}
	}
	return &Connection{
		policy:         policy,
		localSeq:       0,
		sendBufferSize: sendBufferSize,
		pending:        make(map[uint32]*reassembly),
	}
}

// CommitToken installs a new (channel id, token id) pair as current,
// demoting the previous current token to "previous" so it remains
// acceptable for inbound chunks during the renewal window (§4.2, §9).
// The very first OpenSecureChannelResponse has no previous token to
// preserve, which CommitToken handles by leaving previous zero-valued.
func (c *Connection) CommitToken(t Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.haveToken {
		c.previous = c.current
	}
	c.current = t
	c.haveToken = true
}

// ExpirePrevious drops the previous token, ending its renewal-window
// grace period. No package in this module calls it; the previous token
// otherwise stays acceptable until the next CommitToken or Reset.
func (c *Connection) ExpirePrevious() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previous = Token{}
}

// Reset clears all channel state: sequence counters, tokens, and any
// partial reassembly. Called on close or transport failure (§3).
func (c *Connection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Token{}
	c.previous = Token{}
	c.haveToken = false
	c.localSeq = 0
	c.remoteSeq = 0
	c.haveRemoteSeq = false
	c.pending = make(map[uint32]*reassembly)
}

// maxPlaintextPerChunk computes how many body bytes fit in one chunk
// given the negotiated send buffer size, the policy's symmetric header
// overhead, the fixed 8-byte transport header, the 8-byte sequence
// header, and any policy signature/padding trailer.
func (c *Connection) maxPlaintextPerChunk() int {
	overhead := ua.TransportHeaderSize + c.policy.SymmetricHeaderSize() + 8 + c.policy.PlaintextOverhead()
	n := int(c.sendBufferSize) - overhead
	if n <= 0 {
		// Degenerate configuration (buffer smaller than fixed overhead);
		// still make forward progress with a minimal chunk.
		return 1
	}
	return n
}

// nextSequenceNumber advances localSeq, wrapping from MaxUint32 to 1
// per §4.2.
func (c *Connection) nextSequenceNumber() uint32 {
	if c.localSeq >= maxUint32 {
		c.localSeq = sequenceNumberWrap
		return c.localSeq
	}
	c.localSeq++
	return c.localSeq
}

// Chunk is one on-wire fragment ready to hand to the transport: its
// Payload holds the security header + sequence header +
// possibly-encrypted body piece; the transport header is added by the
// transport from MessageType, ChunkType and the payload length.
type Chunk struct {
	MessageType ua.MessageType
	ChunkType   ua.ChunkType
	Payload     []byte
}

// Outbound splits bodyBytes into chunks for requestID, assigning
// contiguous, strictly increasing sequence numbers and marking the
// last chunk Final. The caller (transport) is responsible for writing
// the returned chunks to the wire atomically, back to back, so no
// other message's bytes interleave (§4.3, invariant 3 of §8).
func (c *Connection) Outbound(messageType ua.MessageType, requestID uint32, bodyBytes []byte) ([]Chunk, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	maxPerChunk := c.maxPlaintextPerChunk()
	var chunks []Chunk
	remaining := bodyBytes
	for {
		n := len(remaining)
		last := true
		if n > maxPerChunk {
			n = maxPerChunk
			last = false
		}
		piece := remaining[:n]
		remaining = remaining[n:]

		seq := c.nextSequenceNumber()
		payload := c.encodeChunk(seq, requestID, piece)
		ct := ua.ChunkIntermediate
		if last {
			ct = ua.ChunkFinal
		}
		chunks = append(chunks, Chunk{MessageType: messageType, ChunkType: ct, Payload: payload})
		if last {
			break
		}
	}
	return chunks, nil
}

// encodeChunk builds one chunk's payload: symmetric security header
// (channel id, token id), sequence header, then the signed/encrypted
// piece. The transport header itself is added by the transport, which
// knows the total frame length only once this payload is sized.
func (c *Connection) encodeChunk(seq, requestID uint32, piece []byte) []byte {
	enc := ua.NewEncoder()
	enc.WriteUint32(c.current.ChannelID)
	enc.WriteUint32(c.current.TokenID)
	enc.WriteUint32(seq)
	enc.WriteUint32(requestID)

	signed, err := c.policy.Sign(piece)
	if err == nil && len(signed) > 0 {
		piece = signed
	}
	cipher, err := c.policy.Encrypt(piece)
	if err != nil {
		cipher = piece
	}
	return append(enc.Bytes(), cipher...)
}

// Result is one reassembly outcome delivered to the caller (C4/C5) once
// a chunk stream completes or aborts.
type Result struct {
	RequestID uint32
	Body      []byte
	Aborted   bool
	AbortStatus ua.StatusCode
}

// Inbound feeds one received chunk's payload (the bytes following the
// 8-byte transport header) through security verification and sequence
// checking, appending its decrypted body to the reassembly buffer for
// its request id. It returns a non-nil *Result only once the chunk
// stream for that request id completes (F) or aborts (A).
//
// Chunks carrying either the current or the previous (not yet expired)
// token id are accepted, covering the renewal race documented in §9.
func (c *Connection) Inbound(chunkType ua.ChunkType, payload []byte) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dec := ua.NewDecoder(payload)
	channelID, err := dec.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(ErrProtocol, err)
	}
	tokenID, err := dec.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(ErrProtocol, err)
	}
	if !c.acceptsToken(channelID, tokenID) {
		return nil, ErrSecurity
	}
	seq, err := dec.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(ErrProtocol, err)
	}
	requestID, err := dec.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(ErrProtocol, err)
	}
	if err := c.checkSequence(seq); err != nil {
		return nil, err
	}

	cipher := payload[decOffset(payload, dec):]
	plain, err := c.policy.Decrypt(cipher)
	if err != nil {
		return nil, errors.Wrap(ErrSecurity, err)
	}
	if err := c.policy.Verify(plain, nil); err != nil {
		return nil, errors.Wrap(ErrSecurity, err)
	}

	if chunkType == ua.ChunkAbort {
		delete(c.pending, requestID)
		status := ua.StatusBadTimeout
		if len(plain) >= 4 {
			if v, err := ua.NewDecoder(plain).ReadUint32(); err == nil {
				status = ua.StatusCode(v)
			}
		}
		return &Result{RequestID: requestID, Aborted: true, AbortStatus: status}, nil
	}

	r, ok := c.pending[requestID]
	if !ok {
		r = &reassembly{}
		c.pending[requestID] = r
	}
	r.body = append(r.body, plain...)

	if chunkType == ua.ChunkFinal {
		delete(c.pending, requestID)
		return &Result{RequestID: requestID, Body: r.body}, nil
	}
	return nil, nil
}

// decOffset computes how many bytes of payload the decoder has
// consumed so far, letting Inbound hand the remainder to Decrypt
// without the security-header/sequence-header fields having to be
// re-serialized.
func decOffset(payload []byte, dec *ua.Decoder) int {
	return len(payload) - dec.Len()
}

// acceptsToken reports whether (channelID, tokenID) matches either the
// current or the still-valid previous token. Before the very first
// token is committed, the channel id is not yet assigned and the
// initial OpenSecureChannel exchange carries zero for both fields; that
// is the one case accepted without a committed token.
func (c *Connection) acceptsToken(channelID, tokenID uint32) bool {
	if !c.haveToken {
		return channelID == 0 && tokenID == 0
	}
	if channelID == c.current.ChannelID && tokenID == c.current.TokenID {
		return true
	}
	if c.previous != (Token{}) && channelID == c.previous.ChannelID && tokenID == c.previous.TokenID {
		return true
	}
	return false
}

// checkSequence enforces strictly increasing remote sequence numbers
// (§3, §4.2, invariant 4 of §8); a regression is connection-fatal.
func (c *Connection) checkSequence(seq uint32) error {
	if !c.haveRemoteSeq {
		c.remoteSeq = seq
		c.haveRemoteSeq = true
		return nil
	}
	expectPrevWrap := c.remoteSeq == maxUint32 && seq == sequenceNumberWrap
	if seq <= c.remoteSeq && !expectPrevWrap {
		return ErrProtocol
	}
	c.remoteSeq = seq
	return nil
}
