// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/internal/lifecycletest"
	"github.com/absmach/opcua-client/lifecycle"
	"github.com/absmach/opcua-client/ua"
)

func TestConnectReachesSecured(t *testing.T) {
	srv, dial := lifecycletest.New()
	defer srv.Close()

	done := make(chan error, 1)
	go func() { done <- srv.HandleHandshake(lifecycletest.DefaultToken, 600000) }()

	lc := lifecycle.New(lifecycle.Config{EndpointURL: "opc.tcp://localhost:4840"}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := lc.Connect(ctx, dial, "tcp", "localhost:4840")
	assert.NoError(t, err)
	assert.NoError(t, <-done)
	assert.Equal(t, lifecycle.Secured, lc.State())
	assert.NotNil(t, lc.Mux())

	assert.NoError(t, lc.Close())
	assert.Equal(t, lifecycle.Disconnected, lc.State())
}

func TestConnectTwiceReturnsAlreadyConnected(t *testing.T) {
	srv, dial := lifecycletest.New()
	defer srv.Close()
	go func() { _ = srv.HandleHandshake(lifecycletest.DefaultToken, 600000) }()

	lc := lifecycle.New(lifecycle.Config{EndpointURL: "opc.tcp://localhost:4840"}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, lc.Connect(ctx, dial, "tcp", "localhost:4840"))

	err := lc.Connect(ctx, dial, "tcp", "localhost:4840")
	assert.Error(t, err)

	assert.NoError(t, lc.Close())
}

func TestTransportDropTearsDownToDisconnected(t *testing.T) {
	srv, dial := lifecycletest.New()
	go func() { _ = srv.HandleHandshake(lifecycletest.DefaultToken, 600000) }()

	lc := lifecycle.New(lifecycle.Config{EndpointURL: "opc.tcp://localhost:4840"}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, lc.Connect(ctx, dial, "tcp", "localhost:4840"))

	assert.NoError(t, srv.Close())

	assert.Eventually(t, func() bool {
		return lc.State() == lifecycle.Disconnected
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewRequestHeaderCarriesAuthenticationToken(t *testing.T) {
	lc := lifecycle.New(lifecycle.Config{}, nil)
	token := ua.NewNumericNodeID(0, 42)
	lc.SetAuthenticationToken(token)

	h := lc.NewRequestHeader(1000)
	assert.Equal(t, token, h.AuthenticationToken)
	assert.Equal(t, uint32(1000), h.TimeoutHint)
	assert.Equal(t, token, lc.AuthenticationToken())
}
