// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/internal/transporttest"
	"github.com/absmach/opcua-client/transport"
	"github.com/absmach/opcua-client/ua"
)

func TestSendReadFrameRoundTrip(t *testing.T) {
	pipe := transporttest.NewPipe()
	defer pipe.Close()

	serverTP := transport.FromConn(pipe.Server)
	errCh := make(chan error, 1)
	frameCh := make(chan transport.Frame, 1)
	go func() {
		frame, err := serverTP.ReadFrame()
		errCh <- err
		frameCh <- frame
	}()

	err := pipe.Client.Send(ua.MessageTypeMessage, []transport.OutChunk{
		{ChunkType: ua.ChunkFinal, Payload: []byte("payload-bytes")},
	})
	assert.NoError(t, err)

	assert.NoError(t, <-errCh)
	frame := <-frameCh

	assert.Equal(t, ua.MessageTypeMessage, frame.Header.MessageType)
	assert.Equal(t, ua.ChunkFinal, frame.Header.ChunkType)
	assert.Equal(t, []byte("payload-bytes"), frame.Payload)
}

func TestSendAfterCloseReturnsErrClosed(t *testing.T) {
	pipe := transporttest.NewPipe()
	assert.NoError(t, pipe.Client.Close())

	err := pipe.Client.Send(ua.MessageTypeMessage, []transport.OutChunk{{ChunkType: ua.ChunkFinal, Payload: []byte("x")}})
	assert.ErrorIs(t, err, transport.ErrClosed)
}

func TestReadFrameAfterPeerCloseFails(t *testing.T) {
	pipe := transporttest.NewPipe()
	assert.NoError(t, pipe.Close())

	_, err := pipe.Client.ReadFrame()
	assert.Error(t, err)
}

func TestReadFrameRejectsShortLength(t *testing.T) {
	pipe := transporttest.NewPipe()
	defer pipe.Close()

	errCh := make(chan error, 1)
	go func() {
		_, err := pipe.Client.ReadFrame()
		errCh <- err
	}()

	header := ua.TransportHeader{MessageType: ua.MessageTypeMessage, ChunkType: ua.ChunkFinal, Length: 3}
	enc := ua.NewEncoder()
	header.Encode(enc)
	_, werr := pipe.Server.Write(enc.Bytes())
	assert.NoError(t, werr)

	err := <-errCh
	assert.ErrorIs(t, err, ua.ErrInvalidEncoding)
}
