// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package transporttest provides an in-memory duplex connection so
// uasc/mux/lifecycle/facade tests can drive a full client against a
// scripted server without a real socket.
package transporttest

import (
	"net"

	"github.com/absmach/opcua-client/transport"
)

// Pipe is a pair of connected in-memory sockets: Client is handed to
// transport.FromConn for the code under test, Server is driven
// directly by the test to script frames and assert writes.
type Pipe struct {
	Client *transport.Transport
	Server net.Conn
}

// NewPipe returns a freshly connected Pipe.
func NewPipe() *Pipe {
	clientConn, serverConn := net.Pipe()
	return &Pipe{
		Client: transport.FromConn(clientConn),
		Server: serverConn,
	}
}

// Close closes the server side; the client side observes ErrClosed on
// its next read or write, exercising TransportClosed propagation.
func (p *Pipe) Close() error {
	return p.Server.Close()
}
