// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package facade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/facade"
	"github.com/absmach/opcua-client/internal/lifecycletest"
	"github.com/absmach/opcua-client/lifecycle"
	"github.com/absmach/opcua-client/ua"
)

// connect brings up a Secured lifecycle backed by a scripted server,
// returning the server handle so the test can script further traffic.
func connect(t *testing.T) (*lifecycle.Lifecycle, *lifecycletest.Server) {
	t.Helper()
	srv, dial := lifecycletest.New()
	go func() { _ = srv.HandleHandshake(lifecycletest.DefaultToken, 600000) }()

	lc := lifecycle.New(lifecycle.Config{EndpointURL: "opc.tcp://localhost:4840"}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, lc.Connect(ctx, dial, "tcp", "localhost:4840"))
	return lc, srv
}

func TestCreateSessionInstallsAuthenticationToken(t *testing.T) {
	lc, srv := connect(t)
	defer lc.Close()

	authToken := ua.NewNumericNodeID(1, 7)
	go func() {
		reqID, body, err := srv.ReadRequest()
		assert.NoError(t, err)
		_, ok := body.(*ua.CreateSessionRequest)
		assert.True(t, ok)
		resp := &ua.CreateSessionResponse{
			Header:              ua.ResponseHeader{ServiceResult: ua.StatusGood},
			AuthenticationToken: authToken,
		}
		assert.NoError(t, srv.Respond(reqID, resp))
	}()

	svc := facade.New(lc, 2*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := svc.CreateSession(ctx, &ua.CreateSessionRequest{SessionName: "test-session"})
	assert.NoError(t, err)
	assert.Equal(t, authToken, resp.AuthenticationToken)
	assert.Equal(t, authToken, lc.AuthenticationToken())
}

func TestReadCoercesNodeClassAndValueRank(t *testing.T) {
	lc, srv := connect(t)
	defer lc.Close()

	go func() {
		reqID, _, err := srv.ReadRequest()
		assert.NoError(t, err)
		resp := &ua.ReadResponse{
			Header: ua.ResponseHeader{ServiceResult: ua.StatusGood},
			Results: []ua.DataValue{
				{HasValue: true, Value: ua.NewVariant(int32(ua.NodeClassVariable))},
				{HasValue: true, Value: ua.NewVariant(int32(-1))},
			},
		}
		assert.NoError(t, srv.Respond(reqID, resp))
	}()

	svc := facade.New(lc, 2*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req := &ua.ReadRequest{NodesToRead: []ua.ReadValueID{
		{NodeID: ua.NewNumericNodeID(0, 1), AttributeID: ua.AttributeIDNodeClass},
		{NodeID: ua.NewNumericNodeID(0, 2), AttributeID: ua.AttributeIDValueRank},
	}}
	resp, err := svc.Read(ctx, req)
	assert.NoError(t, err)
	assert.Equal(t, ua.NodeClassVariable, resp.Results[0].Value.Value)
	assert.Equal(t, ua.ValueRank(-1), resp.Results[1].Value.Value)
}

func TestCloseSessionToleratesBadSessionClosed(t *testing.T) {
	lc, srv := connect(t)
	defer lc.Close()

	go func() {
		reqID, _, err := srv.ReadRequest()
		assert.NoError(t, err)
		fault := &ua.ServiceFault{Header: ua.ResponseHeader{ServiceResult: ua.StatusBadSessionClosed}}
		assert.NoError(t, srv.Respond(reqID, fault))
	}()

	svc := facade.New(lc, 2*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := svc.CloseSession(ctx, &ua.CloseSessionRequest{DeleteSubscriptions: true})
	assert.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestGetEndpointsServiceFaultSurfaces(t *testing.T) {
	lc, srv := connect(t)
	defer lc.Close()

	go func() {
		reqID, _, err := srv.ReadRequest()
		assert.NoError(t, err)
		fault := &ua.ServiceFault{Header: ua.ResponseHeader{ServiceResult: ua.StatusBadServiceFault}}
		assert.NoError(t, srv.Respond(reqID, fault))
	}()

	svc := facade.New(lc, 2*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := svc.GetEndpoints(ctx, &ua.GetEndpointsRequest{EndpointURL: "opc.tcp://localhost:4840"})
	assert.Error(t, err)
}
