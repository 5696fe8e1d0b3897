// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/ua"
)

func TestTransportHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := ua.TransportHeader{
		MessageType: ua.MessageTypeMessage,
		ChunkType:   ua.ChunkFinal,
		Length:      128,
	}
	enc := ua.NewEncoder()
	h.Encode(enc)
	assert.Len(t, enc.Bytes(), ua.TransportHeaderSize)

	got, err := ua.DecodeTransportHeader(enc.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestDecodeTransportHeaderWrongSize(t *testing.T) {
	_, err := ua.DecodeTransportHeader([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ua.ErrTruncated)
}

func TestHelloEncodeDecodeRoundTrip(t *testing.T) {
	h := ua.Hello{
		ProtocolVersion:   0,
		ReceiveBufferSize: 65536,
		SendBufferSize:    65536,
		MaxMessageSize:    1 << 20,
		MaxChunkCount:     4096,
		EndpointURL:       "opc.tcp://localhost:4840",
	}
	enc := ua.NewEncoder()
	h.Encode(enc)

	got, err := ua.DecodeHello(enc.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestAcknowledgeEncodeDecodeRoundTrip(t *testing.T) {
	a := ua.Acknowledge{
		ProtocolVersion:   0,
		ReceiveBufferSize: 32768,
		SendBufferSize:    32768,
		MaxMessageSize:    1 << 18,
		MaxChunkCount:     128,
	}
	enc := ua.NewEncoder()
	a.Encode(enc)

	got, err := ua.DecodeAcknowledge(enc.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestErrorMessageEncodeDecodeRoundTrip(t *testing.T) {
	e := ua.ErrorMessage{Error: 0x80010000, Reason: "bad secure channel closed"}
	enc := ua.NewEncoder()
	e.Encode(enc)

	got, err := ua.DecodeErrorMessage(enc.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, e, got)
	assert.Contains(t, got.Error(), "bad secure channel closed")
}
