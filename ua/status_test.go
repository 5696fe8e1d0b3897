// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/ua"
)

func TestStatusCodeIsGoodIsBad(t *testing.T) {
	cases := []struct {
		desc   string
		code   ua.StatusCode
		good   bool
		bad    bool
	}{
		{desc: "good", code: ua.StatusGood, good: true, bad: false},
		{desc: "bad timeout", code: ua.StatusBadTimeout, good: false, bad: true},
		{desc: "bad no subscription", code: ua.StatusBadNoSubscription, good: false, bad: true},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.good, tc.code.IsGood())
			assert.Equal(t, tc.bad, tc.code.IsBad())
		})
	}
}

func TestStatusCodeCheck(t *testing.T) {
	assert.NoError(t, ua.StatusGood.Check())

	err := ua.StatusBadSessionClosed.Check()
	assert.Error(t, err)
	assert.Equal(t, ua.StatusBadSessionClosed, err)
}

func TestStatusCodeString(t *testing.T) {
	assert.Equal(t, "BadTimeout", ua.StatusBadTimeout.String())
	assert.Equal(t, "Unknown", ua.StatusCode(0x12345678).String())
}
