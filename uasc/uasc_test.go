// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package uasc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/ua"
	"github.com/absmach/opcua-client/uasc"
)

func TestOutboundInboundSingleChunkRoundTrip(t *testing.T) {
	client := uasc.New(ua.NonePolicy{}, 65536)
	server := uasc.New(ua.NonePolicy{}, 65536)

	body := []byte("a small request body")
	chunks, err := client.Outbound(ua.MessageTypeMessage, 7, body)
	assert.NoError(t, err)
	assert.Len(t, chunks, 1)
	assert.Equal(t, ua.ChunkFinal, chunks[0].ChunkType)

	res, err := server.Inbound(chunks[0].ChunkType, chunks[0].Payload)
	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, uint32(7), res.RequestID)
	assert.Equal(t, body, res.Body)
}

func TestOutboundSplitsAcrossChunks(t *testing.T) {
	client := uasc.New(ua.NonePolicy{}, 64) // tiny buffer forces multiple chunks
	server := uasc.New(ua.NonePolicy{}, 64)

	body := make([]byte, 300)
	for i := range body {
		body[i] = byte(i)
	}

	chunks, err := client.Outbound(ua.MessageTypeMessage, 1, body)
	assert.NoError(t, err)
	assert.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		if i == len(chunks)-1 {
			assert.Equal(t, ua.ChunkFinal, c.ChunkType)
		} else {
			assert.Equal(t, ua.ChunkIntermediate, c.ChunkType)
		}
	}

	var res *uasc.Result
	for _, c := range chunks {
		res, err = server.Inbound(c.ChunkType, c.Payload)
		assert.NoError(t, err)
	}
	assert.NotNil(t, res)
	assert.Equal(t, body, res.Body)
}

func TestInboundRejectsSequenceRegression(t *testing.T) {
	client := uasc.New(ua.NonePolicy{}, 65536)
	server := uasc.New(ua.NonePolicy{}, 65536)

	chunks, err := client.Outbound(ua.MessageTypeMessage, 1, []byte("first"))
	assert.NoError(t, err)
	_, err = server.Inbound(chunks[0].ChunkType, chunks[0].Payload)
	assert.NoError(t, err)

	// Replay the same chunk: its sequence number is not strictly
	// increasing relative to what the server already observed.
	_, err = server.Inbound(chunks[0].ChunkType, chunks[0].Payload)
	assert.ErrorIs(t, err, uasc.ErrProtocol)
}

func TestInboundRejectsUnknownToken(t *testing.T) {
	client := uasc.New(ua.NonePolicy{}, 65536)
	client.CommitToken(uasc.Token{ChannelID: 1, TokenID: 1})
	server := uasc.New(ua.NonePolicy{}, 65536)
	server.CommitToken(uasc.Token{ChannelID: 2, TokenID: 2})

	chunks, err := client.Outbound(ua.MessageTypeMessage, 1, []byte("hi"))
	assert.NoError(t, err)

	_, err = server.Inbound(chunks[0].ChunkType, chunks[0].Payload)
	assert.ErrorIs(t, err, uasc.ErrSecurity)
}

func TestInboundAcceptsPreviousTokenDuringRenewalWindow(t *testing.T) {
	client := uasc.New(ua.NonePolicy{}, 65536)
	server := uasc.New(ua.NonePolicy{}, 65536)

	first := uasc.Token{ChannelID: 1, TokenID: 1}
	client.CommitToken(first)
	server.CommitToken(first)

	chunks, err := client.Outbound(ua.MessageTypeMessage, 1, []byte("before renewal"))
	assert.NoError(t, err)
	_, err = server.Inbound(chunks[0].ChunkType, chunks[0].Payload)
	assert.NoError(t, err)

	// Server renews; client has not yet committed the new token, so it
	// keeps sending under the now-previous token.
	server.CommitToken(uasc.Token{ChannelID: 1, TokenID: 2})

	chunks, err = client.Outbound(ua.MessageTypeMessage, 2, []byte("still old token"))
	assert.NoError(t, err)
	res, err := server.Inbound(chunks[0].ChunkType, chunks[0].Payload)
	assert.NoError(t, err)
	assert.Equal(t, []byte("still old token"), res.Body)
}

func TestAcceptsZeroTokenBeforeAnyCommit(t *testing.T) {
	client := uasc.New(ua.NonePolicy{}, 65536)
	server := uasc.New(ua.NonePolicy{}, 65536)

	chunks, err := client.Outbound(ua.MessageTypeOpenSecure, 1, []byte("opn request"))
	assert.NoError(t, err)
	res, err := server.Inbound(chunks[0].ChunkType, chunks[0].Payload)
	assert.NoError(t, err)
	assert.Equal(t, []byte("opn request"), res.Body)
}

func TestInboundAbortDeliversStatus(t *testing.T) {
	client := uasc.New(ua.NonePolicy{}, 65536)
	server := uasc.New(ua.NonePolicy{}, 65536)

	enc := ua.NewEncoder()
	enc.WriteUint32(uint32(ua.StatusBadTimeout))

	chunks, err := client.Outbound(ua.MessageTypeMessage, 3, enc.Bytes())
	assert.NoError(t, err)
	abortChunk := chunks[len(chunks)-1]
	abortChunk.ChunkType = ua.ChunkAbort

	res, err := server.Inbound(abortChunk.ChunkType, abortChunk.Payload)
	assert.NoError(t, err)
	assert.True(t, res.Aborted)
	assert.Equal(t, ua.StatusBadTimeout, res.AbortStatus)
}

func TestResetClearsState(t *testing.T) {
	c := uasc.New(ua.NonePolicy{}, 65536)
	c.CommitToken(uasc.Token{ChannelID: 1, TokenID: 1})
	_, err := c.Outbound(ua.MessageTypeMessage, 1, []byte("x"))
	assert.NoError(t, err)

	c.Reset()

	// After Reset, the zero token is accepted again as if freshly
	// constructed (no committed token).
	other := uasc.New(ua.NonePolicy{}, 65536)
	chunks, err := other.Outbound(ua.MessageTypeOpenSecure, 1, []byte("y"))
	assert.NoError(t, err)
	res, err := c.Inbound(chunks[0].ChunkType, chunks[0].Payload)
	assert.NoError(t, err)
	assert.Equal(t, []byte("y"), res.Body)
}
