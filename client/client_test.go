// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/client"
	"github.com/absmach/opcua-client/internal/lifecycletest"
	"github.com/absmach/opcua-client/lifecycle"
	"github.com/absmach/opcua-client/ua"
)

func TestDialReachesSecuredAndWiresFacade(t *testing.T) {
	srv, dial := lifecycletest.New()
	defer srv.Close()
	go func() { _ = srv.HandleHandshake(lifecycletest.DefaultToken, 600000) }()

	c := client.New("opc.tcp://localhost:4840", client.WithDialer(dial))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, c.Dial(ctx))

	assert.Equal(t, lifecycle.Secured, c.State())
	assert.NotNil(t, c.Service())
	assert.NotNil(t, c.Subscriptions())

	assert.NoError(t, c.Close())
	assert.Equal(t, lifecycle.Disconnected, c.State())
}

func TestDialInvalidEndpointFailsBeforeConnecting(t *testing.T) {
	c := client.New("://not-a-valid-url")
	err := c.Dial(context.Background())
	assert.Error(t, err)
	assert.Equal(t, lifecycle.Disconnected, c.State())
}

func TestStateBeforeDialIsDisconnected(t *testing.T) {
	c := client.New("opc.tcp://localhost:4840")
	assert.Equal(t, lifecycle.Disconnected, c.State())
	assert.NoError(t, c.Close())
}

func TestServiceRoundTripThroughDialedClient(t *testing.T) {
	srv, dial := lifecycletest.New()
	defer srv.Close()
	go func() { _ = srv.HandleHandshake(lifecycletest.DefaultToken, 600000) }()

	c := client.New("opc.tcp://localhost:4840", client.WithDialer(dial))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, c.Dial(ctx))
	defer c.Close()

	go func() {
		reqID, body, err := srv.ReadRequest()
		assert.NoError(t, err)
		req, ok := body.(*ua.GetEndpointsRequest)
		assert.True(t, ok)
		assert.NoError(t, srv.Respond(reqID, &ua.GetEndpointsResponse{
			Header:    ua.ResponseHeader{ServiceResult: ua.StatusGood},
			Endpoints: []ua.EndpointDescription{{EndpointURL: req.EndpointURL}},
		}))
	}()

	resp, err := c.Service().GetEndpoints(ctx, &ua.GetEndpointsRequest{EndpointURL: "opc.tcp://localhost:4840"})
	assert.NoError(t, err)
	assert.Len(t, resp.Endpoints, 1)
}
