// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package client wires the full client core — transport, secure
// connection, multiplexer, channel lifecycle, service façade, and
// publish loop — behind one entry point, configured with functional
// options in the style of the wider OPC UA client ecosystem.
package client

import (
	"context"
	"net/url"
	"time"

	"github.com/absmach/opcua-client/facade"
	"github.com/absmach/opcua-client/lifecycle"
	"github.com/absmach/opcua-client/logger"
	"github.com/absmach/opcua-client/subscription"
	"github.com/absmach/opcua-client/transport"
	"github.com/absmach/opcua-client/ua"
)

// Client is a connected client core: one secure channel, its service
// façade, and its subscription manager.
type Client struct {
	endpointURL string
	dial        transport.Dialer
	log         logger.Logger

	lifeCfg lifecycle.Config

	life *lifecycle.Lifecycle
	svc  facade.Service
	subs *subscription.Manager
}

// Option configures a Client before Dial.
type Option func(*Client)

// WithDialer overrides the dial function, normally only for tests that
// need an in-memory transport instead of a real socket.
func WithDialer(dial transport.Dialer) Option {
	return func(c *Client) { c.dial = dial }
}

// WithLogger sets the logger every component below the client logs
// through.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithSecurityPolicy selects the SecurityPolicy used for every
// OpenSecureChannel and chunk on the wire.
func WithSecurityPolicy(policy ua.SecurityPolicy) Option {
	return func(c *Client) { c.lifeCfg.SecurityPolicy = policy }
}

// WithBufferSizes overrides the Hello buffer sizes and limits advertised
// to the server (defaults are 64KiB receive and send buffers, a 4MiB
// maximum message size and 4000 chunks).
func WithBufferSizes(receive, send, maxMessage, maxChunkCount uint32) Option {
	return func(c *Client) {
		c.lifeCfg.ReceiveBufferSize = receive
		c.lifeCfg.SendBufferSize = send
		c.lifeCfg.MaxMessageSize = maxMessage
		c.lifeCfg.MaxChunkCount = maxChunkCount
	}
}

// WithRequestedLifetime overrides the secure channel lifetime (in
// milliseconds) requested on OpenSecureChannel.
func WithRequestedLifetime(ms uint32) Option {
	return func(c *Client) { c.lifeCfg.RequestedLifetime = ms }
}

// WithDefaultTimeout overrides the default per-request timeout applied
// by the service façade and by C5's own OpenSecureChannel calls.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Client) { c.lifeCfg.DefaultTimeout = d }
}

// New returns an unconnected Client targeting endpoint (an
// "opc.tcp://host:port/path" URL).
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpointURL: endpoint,
		dial:        transport.DefaultDialer,
		log:         logger.NewMock(),
	}
	c.lifeCfg.EndpointURL = endpoint
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial performs the full connection sequence: TCP connect,
// Hello/Acknowledge, OpenSecureChannel, and starts the receive and
// renewal tasks. The façade and subscription manager are ready for use
// once Dial returns.
func (c *Client) Dial(ctx context.Context) error {
	host, err := hostAndPort(c.endpointURL)
	if err != nil {
		return err
	}

	c.life = lifecycle.New(c.lifeCfg, c.log)
	if err := c.life.Connect(ctx, c.dial, "tcp", host); err != nil {
		return err
	}

	c.svc = facade.New(c.life, c.lifeCfg.DefaultTimeout)
	c.subs = subscription.New(c.life, c.svc, c.log)
	return nil
}

// Service returns the typed service façade (C6). Valid once Dial has
// returned successfully.
func (c *Client) Service() facade.Service { return c.svc }

// Subscriptions returns the subscription/publish loop manager (C7).
// Valid once Dial has returned successfully.
func (c *Client) Subscriptions() *subscription.Manager { return c.subs }

// State reports the underlying channel lifecycle's current state.
func (c *Client) State() lifecycle.State {
	if c.life == nil {
		return lifecycle.Disconnected
	}
	return c.life.State()
}

// Close tears the secure channel and transport down.
func (c *Client) Close() error {
	if c.life == nil {
		return nil
	}
	return c.life.Close()
}

// hostAndPort extracts the dial target from an opc.tcp endpoint URL.
func hostAndPort(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}
