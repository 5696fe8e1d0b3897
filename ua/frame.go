// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

import "fmt"

// MessageType is the 3-byte ASCII message type that opens every frame.
type MessageType string

// Transport-level message types (§6).
const (
	MessageTypeHello        MessageType = "HEL"
	MessageTypeAcknowledge  MessageType = "ACK"
	MessageTypeError        MessageType = "ERR"
	MessageTypeOpenSecure   MessageType = "OPN"
	MessageTypeMessage      MessageType = "MSG"
	MessageTypeCloseSecure  MessageType = "CLO"
)

// ChunkType is the 1-byte chunk flag.
type ChunkType byte

const (
	ChunkFinal        ChunkType = 'F'
	ChunkIntermediate ChunkType = 'C'
	ChunkAbort        ChunkType = 'A'
)

// TransportHeaderSize is the fixed 8-byte header every frame begins with.
const TransportHeaderSize = 8

// TransportHeader is the common prefix of every OPC UA TCP frame: a
// 3-byte message type, a 1-byte chunk flag, and a 4-byte little-endian
// total frame length (header included).
type TransportHeader struct {
	MessageType MessageType
	ChunkType   ChunkType
	Length      uint32
}

// Encode appends the 8-byte transport header.
func (h TransportHeader) Encode(enc *Encoder) {
	enc.buf.WriteString(string(h.MessageType))
	enc.WriteByte(byte(h.ChunkType))
	enc.WriteUint32(h.Length)
}

// DecodeTransportHeader reads the fixed 8-byte header from raw, which
// must be exactly TransportHeaderSize bytes (callers read that much off
// the stream before calling this).
func DecodeTransportHeader(raw []byte) (TransportHeader, error) {
	if len(raw) != TransportHeaderSize {
		return TransportHeader{}, ErrTruncated
	}
	dec := NewDecoder(raw)
	mt := make([]byte, 3)
	for i := range mt {
		b, err := dec.ReadByte()
		if err != nil {
			return TransportHeader{}, err
		}
		mt[i] = b
	}
	ct, err := dec.ReadByte()
	if err != nil {
		return TransportHeader{}, err
	}
	length, err := dec.ReadUint32()
	if err != nil {
		return TransportHeader{}, err
	}
	return TransportHeader{
		MessageType: MessageType(mt),
		ChunkType:   ChunkType(ct),
		Length:      length,
	}, nil
}

func (h TransportHeader) String() string {
	return fmt.Sprintf("%s|%c|len=%d", h.MessageType, h.ChunkType, h.Length)
}

// Hello is the client's opening handshake payload.
type Hello struct {
	ProtocolVersion   uint32
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
	EndpointURL       string
}

// Encode appends the Hello payload (no TypeID prefix; Hello is framed
// by message type alone).
func (h Hello) Encode(enc *Encoder) {
	enc.WriteUint32(h.ProtocolVersion)
	enc.WriteUint32(h.ReceiveBufferSize)
	enc.WriteUint32(h.SendBufferSize)
	enc.WriteUint32(h.MaxMessageSize)
	enc.WriteUint32(h.MaxChunkCount)
	enc.WriteString(h.EndpointURL, false)
}

// DecodeHello reads a Hello payload.
func DecodeHello(data []byte) (Hello, error) {
	dec := NewDecoder(data)
	var h Hello
	var err error
	if h.ProtocolVersion, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	if h.ReceiveBufferSize, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	if h.SendBufferSize, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	if h.MaxMessageSize, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	if h.MaxChunkCount, err = dec.ReadUint32(); err != nil {
		return h, err
	}
	if h.EndpointURL, err = dec.ReadString(); err != nil {
		return h, err
	}
	return h, nil
}

// Acknowledge is the server's reply to Hello: same buffer-negotiation
// fields, minus EndpointURL.
type Acknowledge struct {
	ProtocolVersion   uint32
	ReceiveBufferSize uint32
	SendBufferSize    uint32
	MaxMessageSize    uint32
	MaxChunkCount     uint32
}

// Encode appends the Acknowledge payload.
func (a Acknowledge) Encode(enc *Encoder) {
	enc.WriteUint32(a.ProtocolVersion)
	enc.WriteUint32(a.ReceiveBufferSize)
	enc.WriteUint32(a.SendBufferSize)
	enc.WriteUint32(a.MaxMessageSize)
	enc.WriteUint32(a.MaxChunkCount)
}

// DecodeAcknowledge reads an Acknowledge payload.
func DecodeAcknowledge(data []byte) (Acknowledge, error) {
	dec := NewDecoder(data)
	var a Acknowledge
	var err error
	if a.ProtocolVersion, err = dec.ReadUint32(); err != nil {
		return a, err
	}
	if a.ReceiveBufferSize, err = dec.ReadUint32(); err != nil {
		return a, err
	}
	if a.SendBufferSize, err = dec.ReadUint32(); err != nil {
		return a, err
	}
	if a.MaxMessageSize, err = dec.ReadUint32(); err != nil {
		return a, err
	}
	if a.MaxChunkCount, err = dec.ReadUint32(); err != nil {
		return a, err
	}
	return a, nil
}

// ErrorMessage is the ERR frame payload.
type ErrorMessage struct {
	Error  uint32
	Reason string
}

// Encode appends the Error payload.
func (e ErrorMessage) Encode(enc *Encoder) {
	enc.WriteUint32(e.Error)
	enc.WriteString(e.Reason, false)
}

// DecodeErrorMessage reads an Error payload.
func DecodeErrorMessage(data []byte) (ErrorMessage, error) {
	dec := NewDecoder(data)
	var e ErrorMessage
	var err error
	if e.Error, err = dec.ReadUint32(); err != nil {
		return e, err
	}
	if e.Reason, err = dec.ReadString(); err != nil {
		return e, err
	}
	return e, nil
}

func (e ErrorMessage) Error() string {
	return fmt.Sprintf("server error 0x%08x: %s", e.Error, e.Reason)
}
