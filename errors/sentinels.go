// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package errors

// Sentinel errors shared across the transport, secure-channel, and
// multiplexer layers. Kept as package-level Error values (rather than
// per-package constants) so a caller can use Contains to test for them
// after they have been wrapped with call-site context.
var (
	// ErrTransportClosed is delivered to every pending sink and to the
	// publish loop when the underlying connection is gone.
	ErrTransportClosed = New("transport closed")

	// ErrTimeout is returned when a request's timeout_ms elapses
	// before a response arrives.
	ErrTimeout = New("request timed out")

	// ErrCancelled is returned when a caller cancels a pending request.
	ErrCancelled = New("request cancelled")

	// ErrProtocol marks a fatal framing or sequencing violation:
	// malformed frame, sequence-number regression, channel-id mismatch.
	ErrProtocol = New("protocol error")

	// ErrSecurity marks a fatal security violation: signature
	// verification failure, unknown token outside the renewal window,
	// decryption failure.
	ErrSecurity = New("security error")

	// ErrServiceFault marks a non-good ServiceResult in a response
	// header. It is per-call and never connection-fatal.
	ErrServiceFault = New("service fault")

	// ErrNoPendingRequest names an inbound response for a request id
	// with no matching pending entry. The multiplexer logs that case
	// with its own message and does not use this value.
	ErrNoPendingRequest = New("no pending request for id")

	// ErrNotConnected names an operation attempted before the channel
	// lifecycle has reached Secured. No package in this module returns it.
	ErrNotConnected = New("secure channel not open")

	// ErrAlreadyConnected guards against a second Connect on a Lifecycle.
	ErrAlreadyConnected = New("already connected")
)
