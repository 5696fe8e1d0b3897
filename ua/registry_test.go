// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/ua"
)

func TestEncodeDecodeBodyRoundTrip(t *testing.T) {
	req := &ua.CreateSessionRequest{
		ClientDescription:      "opcua-client",
		EndpointURL:            "opc.tcp://localhost:4840",
		SessionName:            "session-1",
		RequestedSessionTimeout: 60000,
	}

	data := ua.EncodeBody(req)

	id, err := ua.PeekTypeID(data)
	assert.NoError(t, err)
	assert.Equal(t, ua.CreateSessionRequestTypeID, id)

	body, err := ua.DecodeBody(data)
	assert.NoError(t, err)
	got, ok := body.(*ua.CreateSessionRequest)
	assert.True(t, ok)
	assert.Equal(t, req.SessionName, got.SessionName)
	assert.Equal(t, req.EndpointURL, got.EndpointURL)
}

func TestDecodeBodyUnknownType(t *testing.T) {
	enc := ua.NewEncoder()
	ua.NewNumericNodeID(0, 999999).Encode(enc)

	_, err := ua.DecodeBody(enc.Bytes())
	assert.ErrorIs(t, err, ua.ErrUnknownType)
}

func TestDecodeBodyServiceFault(t *testing.T) {
	fault := &ua.ServiceFault{
		Header: ua.ResponseHeader{ServiceResult: ua.StatusBadServiceFault},
	}
	data := ua.EncodeBody(fault)

	id, err := ua.PeekTypeID(data)
	assert.NoError(t, err)
	assert.Equal(t, ua.ServiceFaultTypeID, id)

	body, err := ua.DecodeBody(data)
	assert.NoError(t, err)
	got, ok := body.(*ua.ServiceFault)
	assert.True(t, ok)
	assert.Equal(t, ua.StatusBadServiceFault, got.Header.ServiceResult)
}
