// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"strings"

	"github.com/absmach/opcua-client/errors"
)

const (
	// Debug level is used for verbose wire-level tracing (chunk and sequence details).
	Debug Level = iota
	// Info level is used for connection lifecycle and subscription events.
	Info
	// Warn level is used for recovered protocol conditions (dropped late response, re-issued publish).
	Warn
	// Error level is used for fatal connection teardown causes.
	Error
)

// ErrInvalidLogLevel indicates an unknown level string.
var ErrInvalidLogLevel = errors.New("unrecognized log level")

// Level represents severity level while logging.
type Level int

var levels = map[Level]string{
	Debug: "debug",
	Info:  "info",
	Warn:  "warn",
	Error: "error",
}

var levelsByName = map[string]Level{
	"debug": Debug,
	"info":  Info,
	"warn":  Warn,
	"error": Error,
}

func (lvl Level) String() string {
	return levels[lvl]
}

// UnmarshalText parses a level name, case-insensitively.
func (lvl *Level) UnmarshalText(text string) error {
	l, ok := levelsByName[strings.ToLower(text)]
	if !ok {
		return ErrInvalidLogLevel
	}
	*lvl = l
	return nil
}

// isAllowed reports whether a message logged at lvl should be emitted
// given the configured minimum allowedLevel.
func (lvl Level) isAllowed(allowedLevel Level) bool {
	return lvl >= allowedLevel
}
