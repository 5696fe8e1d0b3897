// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/ua"
)

func TestRequestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := ua.RequestHeader{
		AuthenticationToken: ua.NewStringNodeID(0, "session-token"),
		Timestamp:           time.Unix(1700000000, 0).UTC(),
		RequestHandle:       7,
		ReturnDiagnostics:   0,
		AuditEntryID:        "audit",
		TimeoutHint:         5000,
		AdditionalHeader:    []byte{1, 2, 3},
	}
	enc := ua.NewEncoder()
	h.Encode(enc)

	dec := ua.NewDecoder(enc.Bytes())
	got, err := ua.DecodeRequestHeader(dec)
	assert.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestResponseHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := ua.ResponseHeader{
		Timestamp:          time.Unix(1700000000, 0).UTC(),
		RequestHandle:      7,
		ServiceResult:      ua.StatusBadTimeout,
		ServiceDiagnostics: []byte{9, 9},
		StringTable:        []string{"a", "b"},
		AdditionalHeader:   nil,
	}
	enc := ua.NewEncoder()
	h.Encode(enc)

	dec := ua.NewDecoder(enc.Bytes())
	got, err := ua.DecodeResponseHeader(dec)
	assert.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestResponseHeaderEmptyStringTable(t *testing.T) {
	h := ua.ResponseHeader{Timestamp: time.Unix(0, 0).UTC()}
	enc := ua.NewEncoder()
	h.Encode(enc)

	dec := ua.NewDecoder(enc.Bytes())
	got, err := ua.DecodeResponseHeader(dec)
	assert.NoError(t, err)
	assert.Nil(t, got.StringTable)
}
