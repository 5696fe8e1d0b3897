// Copyright (c) Mainflux
// SPDX-License-Identifier: Apache-2.0

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/errors"
)

func TestWrapChainsMessages(t *testing.T) {
	wrapped := errors.Wrap(errors.ErrProtocol, fmt.Errorf("short read"))
	assert.Equal(t, "protocol error: short read", wrapped.Error())
	assert.Equal(t, "protocol error", wrapped.Msg())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, fmt.Errorf("x")))
	assert.Nil(t, errors.Wrap(errors.ErrProtocol, nil))
}

func TestContainsFindsWrappedSentinel(t *testing.T) {
	wrapped := errors.Wrap(errors.ErrServiceFault, errors.ErrTimeout)
	assert.True(t, errors.Contains(wrapped, errors.ErrTimeout))
	assert.False(t, errors.Contains(wrapped, errors.ErrSecurity))
}

func TestContainsNilCases(t *testing.T) {
	assert.True(t, errors.Contains(nil, nil))
	assert.False(t, errors.Contains(errors.ErrProtocol, nil))
}
