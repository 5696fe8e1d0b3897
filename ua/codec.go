// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package ua is the wire codec adapter (C1): it encodes and decodes the
// OPC UA TCP frame headers, chunk headers, and known message bodies.
// The UA type dictionary itself is treated as an external collaborator
// per the client-core scope; this package implements only the binary
// primitives and the small set of request/response shapes the service
// façade needs, not the full standard type library.
package ua

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/absmach/opcua-client/errors"
)

// Errors surfaced by the codec adapter.
var (
	// ErrTruncated is returned when a decode requires more bytes than are
	// available.
	ErrTruncated = errors.New("truncated")
	// ErrUnknownType is returned when a numeric type id has no registered
	// body factory.
	ErrUnknownType = errors.New("unknown type")
	// ErrInvalidEncoding is returned for self-inconsistent encoded data
	// (negative length other than the null sentinel, etc).
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// nullLength is the sentinel i32 length meaning "null string/slice".
const nullLength int32 = -1

// Encoder accumulates a little-endian binary encoding of a message body.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the accumulated encoding.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// WriteUint16 appends a little-endian uint16.
func (e *Encoder) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

// WriteUint32 appends a little-endian uint32.
func (e *Encoder) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

// WriteInt32 appends a little-endian int32.
func (e *Encoder) WriteInt32(v int32) {
	e.WriteUint32(uint32(v))
}

// WriteUint64 appends a little-endian uint64.
func (e *Encoder) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

// WriteByte appends a single byte.
func (e *Encoder) WriteByte(v byte) {
	e.buf.WriteByte(v)
}

// WriteBool appends a single byte, 1 for true.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteByte(1)
		return
	}
	e.WriteByte(0)
}

// WriteBytes writes a length-prefixed byte string; nil encodes as -1.
func (e *Encoder) WriteBytes(b []byte) {
	if b == nil {
		e.WriteInt32(nullLength)
		return
	}
	e.WriteInt32(int32(len(b)))
	e.buf.Write(b)
}

// WriteString writes a length-prefixed UTF-8 string; empty-but-non-nil
// and nil are distinguished the way the UA binary encoding requires:
// nil/"null" strings use the -1 sentinel, any other string (including
// "") is written with its real byte length.
func (e *Encoder) WriteString(s string, isNull bool) {
	if isNull {
		e.WriteInt32(nullLength)
		return
	}
	e.WriteBytes([]byte(s))
}

// Decoder reads a little-endian binary encoding of a message body.
type Decoder struct {
	r *bytes.Reader
}

// NewDecoder wraps data for sequential decoding.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{r: bytes.NewReader(data)}
}

// Len returns the number of unread bytes.
func (d *Decoder) Len() int {
	return d.r.Len()
}

// ReadUint16 reads a little-endian uint16.
func (d *Decoder) ReadUint16() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, ErrTruncated
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadUint32 reads a little-endian uint32.
func (d *Decoder) ReadUint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, ErrTruncated
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadInt32 reads a little-endian int32.
func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian uint64.
func (d *Decoder) ReadUint64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, ErrTruncated
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, ErrTruncated
	}
	return b, nil
}

// ReadBool reads a single byte as a boolean.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	return b != 0, err
}

// ReadBytes reads a length-prefixed byte string; -1 length decodes as nil.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n == nullLength {
		return nil, nil
	}
	if n < 0 {
		return nil, ErrInvalidEncoding
	}
	if int(n) > d.r.Len() {
		return nil, ErrTruncated
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, ErrTruncated
	}
	return buf, nil
}

// ReadString reads a length-prefixed UTF-8 string.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteSlice writes a length-prefixed array of items, -1 for nil,
// matching every UA array encoding (Part 6, 5.2.5).
func WriteSlice[T any](enc *Encoder, items []T, writeItem func(*Encoder, T)) {
	if items == nil {
		enc.WriteInt32(nullLength)
		return
	}
	enc.WriteInt32(int32(len(items)))
	for _, it := range items {
		writeItem(enc, it)
	}
}

// ReadSlice reads a length-prefixed array of items.
func ReadSlice[T any](dec *Decoder, readItem func(*Decoder) (T, error)) ([]T, error) {
	n, err := dec.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	out := make([]T, n)
	for i := range out {
		v, err := readItem(dec)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
