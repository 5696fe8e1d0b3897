// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/logger"
)

func TestNewDiscardsBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(&buf, "warn")
	assert.NoError(t, err)

	log.Debug("should not appear")
	log.Info("should not appear either")
	assert.Empty(t, buf.String())

	log.Warn("visible warning")
	assert.Contains(t, buf.String(), "visible warning")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	_, err := logger.New(&buf, "deafening")
	assert.ErrorIs(t, err, logger.ErrInvalidLogLevel)
}

func TestNewIsCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(&buf, "ERROR")
	assert.NoError(t, err)

	log.Warn("dropped")
	log.Error("kept")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "kept")
}

func TestMockDiscardsEverything(t *testing.T) {
	m := logger.NewMock()
	assert.NotPanics(t, func() {
		m.Debug("x")
		m.Info("x")
		m.Warn("x")
		m.Error("x")
	})
}
