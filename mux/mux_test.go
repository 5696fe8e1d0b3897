// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mux_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/internal/transporttest"
	"github.com/absmach/opcua-client/logger"
	"github.com/absmach/opcua-client/mux"
	"github.com/absmach/opcua-client/transport"
	"github.com/absmach/opcua-client/ua"
	"github.com/absmach/opcua-client/uasc"
)

// peer drives the server side of the pipe directly, playing the role
// the real OPC UA server would: reassembling requests and sending back
// scripted responses over its own uasc.Connection/transport pair.
type peer struct {
	conn *uasc.Connection
	tp   *transport.Transport
}

func newPeer(pipe *transporttest.Pipe, token uasc.Token) *peer {
	c := uasc.New(ua.NonePolicy{}, 65536)
	c.CommitToken(token)
	return &peer{conn: c, tp: transport.FromConn(pipe.Server)}
}

func (p *peer) readRequest() (uint32, []byte, error) {
	for {
		frame, err := p.tp.ReadFrame()
		if err != nil {
			return 0, nil, err
		}
		res, err := p.conn.Inbound(frame.Header.ChunkType, frame.Payload)
		if err != nil {
			return 0, nil, err
		}
		if res == nil {
			continue
		}
		return res.RequestID, res.Body, nil
	}
}

func (p *peer) respond(requestID uint32, body ua.Body) error {
	data := ua.EncodeBody(body)
	chunks, err := p.conn.Outbound(ua.MessageTypeMessage, requestID, data)
	if err != nil {
		return err
	}
	out := make([]transport.OutChunk, len(chunks))
	for i, c := range chunks {
		out[i] = transport.OutChunk{ChunkType: c.ChunkType, Payload: c.Payload}
	}
	return p.tp.Send(ua.MessageTypeMessage, out)
}

// clientLoop mimics lifecycle.receiveLoop for tests that exercise Mux
// without a full Lifecycle: it reads frames off the client transport,
// reassembles them, and dispatches completed bodies into m.
func clientLoop(clientConn *uasc.Connection, clientTP *transport.Transport, m *mux.Mux) {
	for {
		frame, err := clientTP.ReadFrame()
		if err != nil {
			return
		}
		res, err := clientConn.Inbound(frame.Header.ChunkType, frame.Payload)
		if err != nil {
			return
		}
		if res == nil {
			continue
		}
		if res.Aborted {
			m.DispatchAbort(res.RequestID, res.AbortStatus)
			continue
		}
		m.Dispatch(res.RequestID, res.Body)
	}
}

func newConnectedMux(pipe *transporttest.Pipe) (*mux.Mux, *peer) {
	token := uasc.Token{ChannelID: 1, TokenID: 1}
	clientConn := uasc.New(ua.NonePolicy{}, 65536)
	clientConn.CommitToken(token)
	m := mux.New(clientConn, pipe.Client, logger.NewMock())
	p := newPeer(pipe, token)
	go clientLoop(clientConn, pipe.Client, m)
	return m, p
}

func TestSendRequestRoundTrip(t *testing.T) {
	pipe := transporttest.NewPipe()
	defer pipe.Close()
	m, p := newConnectedMux(pipe)

	go func() {
		reqID, body, err := p.readRequest()
		assert.NoError(t, err)
		b, err := ua.DecodeBody(body)
		assert.NoError(t, err)
		req, ok := b.(*ua.GetEndpointsRequest)
		assert.True(t, ok)
		assert.Equal(t, "opc.tcp://localhost:4840", req.EndpointURL)

		resp := &ua.GetEndpointsResponse{
			Header:    ua.ResponseHeader{ServiceResult: ua.StatusGood},
			Endpoints: []ua.EndpointDescription{{EndpointURL: req.EndpointURL}},
		}
		assert.NoError(t, p.respond(reqID, resp))
	}()

	req := &ua.GetEndpointsRequest{EndpointURL: "opc.tcp://localhost:4840"}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	body, err := m.SendRequest(ctx, req, mux.Options{Timeout: 2 * time.Second})
	assert.NoError(t, err)

	checked, err := mux.CheckAnswer(body)
	assert.NoError(t, err)
	b, err := ua.DecodeBody(checked)
	assert.NoError(t, err)
	resp, ok := b.(*ua.GetEndpointsResponse)
	assert.True(t, ok)
	assert.Len(t, resp.Endpoints, 1)
}

func TestSendRequestServiceFault(t *testing.T) {
	pipe := transporttest.NewPipe()
	defer pipe.Close()
	m, p := newConnectedMux(pipe)

	go func() {
		reqID, _, err := p.readRequest()
		assert.NoError(t, err)
		fault := &ua.ServiceFault{Header: ua.ResponseHeader{ServiceResult: ua.StatusBadSessionIDInvalid}}
		assert.NoError(t, p.respond(reqID, fault))
	}()

	req := &ua.GetEndpointsRequest{EndpointURL: "opc.tcp://localhost:4840"}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	body, err := m.SendRequest(ctx, req, mux.Options{Timeout: 2 * time.Second})
	assert.NoError(t, err)

	_, err = mux.CheckAnswer(body)
	assert.Error(t, err)
}

func TestSendRequestContextCancel(t *testing.T) {
	pipe := transporttest.NewPipe()
	defer pipe.Close()
	m, p := newConnectedMux(pipe)

	// Drain the request so the write side doesn't block, but never reply.
	go func() { _, _, _ = p.readRequest() }()

	req := &ua.GetEndpointsRequest{EndpointURL: "opc.tcp://localhost:4840"}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := m.SendRequest(ctx, req, mux.Options{})
	assert.Error(t, err)
}

func TestSendRequestLocalTimeout(t *testing.T) {
	pipe := transporttest.NewPipe()
	defer pipe.Close()
	m, p := newConnectedMux(pipe)

	go func() { _, _, _ = p.readRequest() }()

	req := &ua.GetEndpointsRequest{EndpointURL: "opc.tcp://localhost:4840"}
	_, err := m.SendRequest(context.Background(), req, mux.Options{Timeout: 20 * time.Millisecond})
	assert.Error(t, err)
}

func TestSendAsyncDeliversToCallback(t *testing.T) {
	pipe := transporttest.NewPipe()
	defer pipe.Close()
	m, p := newConnectedMux(pipe)

	go func() {
		reqID, _, err := p.readRequest()
		assert.NoError(t, err)
		resp := &ua.GetEndpointsResponse{Header: ua.ResponseHeader{ServiceResult: ua.StatusGood}}
		assert.NoError(t, p.respond(reqID, resp))
	}()

	done := make(chan struct{})
	var gotBody []byte
	var gotErr error
	req := &ua.GetEndpointsRequest{EndpointURL: "opc.tcp://localhost:4840"}
	_, err := m.SendAsync(req, mux.Options{}, func(body []byte, cbErr error) {
		gotBody, gotErr = body, cbErr
		close(done)
	})
	assert.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async callback")
	}
	assert.NoError(t, gotErr)
	assert.NotEmpty(t, gotBody)
}

func TestCloseAllFailsPending(t *testing.T) {
	pipe := transporttest.NewPipe()
	defer pipe.Close()
	m, p := newConnectedMux(pipe)
	go func() { _, _, _ = p.readRequest() }()

	done := make(chan error, 1)
	req := &ua.GetEndpointsRequest{EndpointURL: "x"}
	_, err := m.SendAsync(req, mux.Options{}, func(_ []byte, cbErr error) { done <- cbErr })
	assert.NoError(t, err)

	cause := assert.AnError
	m.CloseAll(cause)

	select {
	case got := <-done:
		assert.Equal(t, cause, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for CloseAll to fail the pending request")
	}
}
