// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"io"

	"github.com/go-kit/kit/log"
)

// Logger specifies the logging API used across the client core.
type Logger interface {
	// Debug logs wire-level tracing information.
	Debug(string)
	// Info logs connection and subscription lifecycle events.
	Info(string)
	// Warn logs recovered protocol conditions.
	Warn(string)
	// Error logs connection-fatal conditions.
	Error(string)
}

var _ Logger = (*logger)(nil)

type logger struct {
	kitLogger log.Logger
	min       Level
}

// New returns a leveled JSON logger wrapping a go-kit logger. Messages
// below min are discarded. An unrecognized level name is rejected with
// the error from Level.UnmarshalText.
func New(out io.Writer, level string) (Logger, error) {
	var min Level
	if err := min.UnmarshalText(level); err != nil {
		return nil, err
	}
	l := log.NewJSONLogger(log.NewSyncWriter(out))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	return &logger{kitLogger: l, min: min}, nil
}

func (l *logger) log(lvl Level, msg string) {
	if !lvl.isAllowed(l.min) {
		return
	}
	l.kitLogger.Log("level", lvl.String(), "message", msg)
}

func (l *logger) Debug(msg string) { l.log(Debug, msg) }
func (l *logger) Info(msg string)  { l.log(Info, msg) }
func (l *logger) Warn(msg string)  { l.log(Warn, msg) }
func (l *logger) Error(msg string) { l.log(Error, msg) }
