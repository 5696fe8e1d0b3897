// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/ua"
)

func TestEncodeDecodePrimitives(t *testing.T) {
	enc := ua.NewEncoder()
	enc.WriteUint16(0xBEEF)
	enc.WriteUint32(0xDEADBEEF)
	enc.WriteInt32(-7)
	enc.WriteUint64(0x0102030405060708)
	enc.WriteByte(0x42)
	enc.WriteBool(true)
	enc.WriteBool(false)
	enc.WriteBytes([]byte("hello"))
	enc.WriteBytes(nil)
	enc.WriteString("world", false)
	enc.WriteString("ignored", true)

	dec := ua.NewDecoder(enc.Bytes())

	u16, err := dec.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	u32, err := dec.ReadUint32()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	i32, err := dec.ReadInt32()
	assert.NoError(t, err)
	assert.Equal(t, int32(-7), i32)

	u64, err := dec.ReadUint64()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	b, err := dec.ReadByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), b)

	bt, err := dec.ReadBool()
	assert.NoError(t, err)
	assert.True(t, bt)

	bf, err := dec.ReadBool()
	assert.NoError(t, err)
	assert.False(t, bf)

	bs, err := dec.ReadBytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), bs)

	nilBs, err := dec.ReadBytes()
	assert.NoError(t, err)
	assert.Nil(t, nilBs)

	s, err := dec.ReadString()
	assert.NoError(t, err)
	assert.Equal(t, "world", s)

	nilS, err := dec.ReadString()
	assert.NoError(t, err)
	assert.Equal(t, "", nilS)

	assert.Equal(t, 0, dec.Len())
}

func TestReadBytesTruncated(t *testing.T) {
	enc := ua.NewEncoder()
	enc.WriteInt32(10)
	enc.WriteByte(1)

	dec := ua.NewDecoder(enc.Bytes())
	_, err := dec.ReadBytes()
	assert.ErrorIs(t, err, ua.ErrTruncated)
}

func TestReadBytesInvalidLength(t *testing.T) {
	enc := ua.NewEncoder()
	enc.WriteInt32(-5)

	dec := ua.NewDecoder(enc.Bytes())
	_, err := dec.ReadBytes()
	assert.ErrorIs(t, err, ua.ErrInvalidEncoding)
}

func TestWriteReadSliceRoundTrip(t *testing.T) {
	enc := ua.NewEncoder()
	items := []uint32{1, 2, 3}
	ua.WriteSlice(enc, items, func(e *ua.Encoder, v uint32) { e.WriteUint32(v) })

	dec := ua.NewDecoder(enc.Bytes())
	got, err := ua.ReadSlice(dec, func(d *ua.Decoder) (uint32, error) { return d.ReadUint32() })
	assert.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestWriteReadSliceNil(t *testing.T) {
	enc := ua.NewEncoder()
	ua.WriteSlice[uint32](enc, nil, func(e *ua.Encoder, v uint32) { e.WriteUint32(v) })

	dec := ua.NewDecoder(enc.Bytes())
	got, err := ua.ReadSlice(dec, func(d *ua.Decoder) (uint32, error) { return d.ReadUint32() })
	assert.NoError(t, err)
	assert.Nil(t, got)
}
