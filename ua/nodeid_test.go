// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/ua"
)

func TestNodeIDEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		desc string
		id   ua.NodeID
	}{
		{desc: "two byte", id: ua.NewNumericNodeID(0, 42)},
		{desc: "four byte", id: ua.NewNumericNodeID(3, 1000)},
		{desc: "full numeric", id: ua.NewNumericNodeID(12345, 987654321)},
		{desc: "string identifier", id: ua.NewStringNodeID(2, "my-session-token")},
		{desc: "null node id", id: ua.NodeID{}},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			enc := ua.NewEncoder()
			tc.id.Encode(enc)

			dec := ua.NewDecoder(enc.Bytes())
			got, err := ua.DecodeNodeID(dec)
			assert.NoError(t, err)
			assert.Equal(t, tc.id, got)
		})
	}
}

func TestNodeIDIsNil(t *testing.T) {
	assert.True(t, ua.NodeID{}.IsNil())
	assert.False(t, ua.NewNumericNodeID(0, 1).IsNil())
	assert.False(t, ua.NewStringNodeID(0, "").IsNil())
}

func TestDecodeNodeIDInvalidTag(t *testing.T) {
	enc := ua.NewEncoder()
	enc.WriteByte(0xFF)

	dec := ua.NewDecoder(enc.Bytes())
	_, err := ua.DecodeNodeID(dec)
	assert.ErrorIs(t, err, ua.ErrInvalidEncoding)
}
