// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package lifecycletest provides a scripted server peer for tests that
// need a fully Secured lifecycle.Lifecycle (facade, subscription,
// client) without a real OPC UA server: it performs the Hello/
// Acknowledge and OpenSecureChannel handshake a real server would, then
// hands the caller a Server to script ordinary request/response traffic.
package lifecycletest

import (
	"context"
	"net"

	"github.com/absmach/opcua-client/transport"
	"github.com/absmach/opcua-client/ua"
	"github.com/absmach/opcua-client/uasc"
)

// DefaultToken is the symmetric security token the scripted
// OpenSecureChannel response grants.
var DefaultToken = uasc.Token{ChannelID: 1, TokenID: 1}

// Server is the server side of an in-memory paired connection, driven
// directly by a test.
type Server struct {
	conn net.Conn
	tp   *transport.Transport
	sc   *uasc.Connection
}

// New returns a Server plus the transport.Dialer a lifecycle.Lifecycle
// under test should be given to Connect with.
func New() (*Server, transport.Dialer) {
	clientConn, serverConn := net.Pipe()
	dial := func(_ context.Context, network, address string) (net.Conn, error) {
		return clientConn, nil
	}
	return &Server{
		conn: serverConn,
		tp:   transport.FromConn(serverConn),
		sc:   uasc.New(ua.NonePolicy{}, 65536),
	}, dial
}

// Close closes the server side of the pipe.
func (s *Server) Close() error { return s.conn.Close() }

// HandleHandshake reads the client's Hello, replies with Acknowledge,
// then reads the initial OpenSecureChannelRequest and replies granting
// token with the given lifetime in milliseconds. It commits token to
// the server's own uasc.Connection so subsequent ReadRequest/Respond
// calls decode correctly.
func (s *Server) HandleHandshake(token uasc.Token, revisedLifetimeMS uint32) error {
	frame, err := s.tp.ReadFrame()
	if err != nil {
		return err
	}
	if _, err := ua.DecodeHello(frame.Payload); err != nil {
		return err
	}
	ack := ua.Acknowledge{ProtocolVersion: 0, ReceiveBufferSize: 65536, SendBufferSize: 65536, MaxMessageSize: 4 * 1024 * 1024, MaxChunkCount: 4000}
	enc := ua.NewEncoder()
	ack.Encode(enc)
	if err := s.tp.Send(ua.MessageTypeAcknowledge, []transport.OutChunk{{ChunkType: ua.ChunkFinal, Payload: enc.Bytes()}}); err != nil {
		return err
	}

	requestID, body, err := s.readRequest()
	if err != nil {
		return err
	}
	b, err := ua.DecodeBody(body)
	if err != nil {
		return err
	}
	if _, ok := b.(*ua.OpenSecureChannelRequest); !ok {
		return ua.ErrInvalidEncoding
	}

	resp := &ua.OpenSecureChannelResponse{
		Header: ua.ResponseHeader{ServiceResult: ua.StatusGood},
		SecurityToken: ua.ChannelSecurityToken{
			ChannelID:       token.ChannelID,
			TokenID:         token.TokenID,
			RevisedLifetime: revisedLifetimeMS,
		},
	}
	if err := s.respond(requestID, ua.MessageTypeOpenSecure, resp); err != nil {
		return err
	}
	s.sc.CommitToken(token)
	return nil
}

// ReadRequest blocks for the next fully reassembled request and
// returns its request id and decoded body.
func (s *Server) ReadRequest() (uint32, ua.Body, error) {
	requestID, raw, err := s.readRequest()
	if err != nil {
		return 0, nil, err
	}
	b, err := ua.DecodeBody(raw)
	return requestID, b, err
}

// Respond encodes resp and sends it as a MSG reply to requestID.
func (s *Server) Respond(requestID uint32, resp ua.Body) error {
	return s.respond(requestID, ua.MessageTypeMessage, resp)
}

func (s *Server) readRequest() (uint32, []byte, error) {
	for {
		frame, err := s.tp.ReadFrame()
		if err != nil {
			return 0, nil, err
		}
		res, err := s.sc.Inbound(frame.Header.ChunkType, frame.Payload)
		if err != nil {
			return 0, nil, err
		}
		if res == nil {
			continue
		}
		return res.RequestID, res.Body, nil
	}
}

func (s *Server) respond(requestID uint32, messageType ua.MessageType, body ua.Body) error {
	data := ua.EncodeBody(body)
	chunks, err := s.sc.Outbound(messageType, requestID, data)
	if err != nil {
		return err
	}
	out := make([]transport.OutChunk, len(chunks))
	for i, c := range chunks {
		out[i] = transport.OutChunk{ChunkType: c.ChunkType, Payload: c.Payload}
	}
	return s.tp.Send(messageType, out)
}
