// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/ua"
)

func TestVariantEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		desc string
		v    ua.Variant
	}{
		{desc: "null", v: ua.Variant{}},
		{desc: "bool", v: ua.NewVariant(true)},
		{desc: "int32", v: ua.NewVariant(int32(-42))},
		{desc: "int64", v: ua.NewVariant(int64(1 << 40))},
		{desc: "uint32", v: ua.NewVariant(uint32(7))},
		{desc: "double", v: ua.NewVariant(3.14159)},
		{desc: "string", v: ua.NewVariant("node value")},
		{desc: "status code", v: ua.NewVariant(ua.StatusBadTimeout)},
		{desc: "node id", v: ua.NewVariant(ua.NewNumericNodeID(1, 99))},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			enc := ua.NewEncoder()
			err := tc.v.Encode(enc)
			assert.NoError(t, err)

			dec := ua.NewDecoder(enc.Bytes())
			got, err := ua.DecodeVariant(dec)
			assert.NoError(t, err)
			assert.Equal(t, tc.v.Value, got.Value)
		})
	}
}

func TestVariantEncodeUnsupportedType(t *testing.T) {
	v := ua.NewVariant(struct{ X int }{X: 1})
	enc := ua.NewEncoder()
	err := v.Encode(enc)
	assert.ErrorIs(t, err, ua.ErrInvalidEncoding)
}

func TestDataValueEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		desc string
		dv   ua.DataValue
	}{
		{
			desc: "with value",
			dv: ua.DataValue{
				Value:    ua.NewVariant(int32(5)),
				Status:   ua.StatusGood,
				HasValue: true,
			},
		},
		{
			desc: "status only",
			dv: ua.DataValue{
				Status: ua.StatusBadSessionClosed,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			enc := ua.NewEncoder()
			err := tc.dv.Encode(enc)
			assert.NoError(t, err)

			dec := ua.NewDecoder(enc.Bytes())
			got, err := ua.DecodeDataValue(dec)
			assert.NoError(t, err)
			assert.Equal(t, tc.dv, got)
		})
	}
}
