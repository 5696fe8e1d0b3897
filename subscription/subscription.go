// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package subscription implements the Subscription / Publish Loop
// (C7): it keeps at least one Publish request in flight for as long as
// any subscription is live, routes inbound NotificationMessages to the
// callback registered for their subscription id, and tears itself down
// on the server's authoritative BadNoSubscription signal.
package subscription

import (
	"context"
	"fmt"
	"sync"

	"github.com/absmach/opcua-client/errors"
	"github.com/absmach/opcua-client/facade"
	"github.com/absmach/opcua-client/lifecycle"
	"github.com/absmach/opcua-client/logger"
	"github.com/absmach/opcua-client/mux"
	"github.com/absmach/opcua-client/ua"
)

// Callback receives one notification batch for the subscription it was
// registered under. A callback that panics is recovered and logged; it
// never brings down the publish loop (§4.7 item 3).
type Callback func(ua.NotificationMessage)

// Manager owns the subscription_id -> callback table and the
// self-refilling Publish loop described in §4.7.
type Manager struct {
	life *lifecycle.Lifecycle
	svc  facade.Service
	log  logger.Logger

	mu        sync.Mutex
	callbacks map[uint32]Callback
	running   bool
}

// New returns a Manager driving life's multiplexer and using svc for
// the CreateSubscription/DeleteSubscriptions request/response exchange.
func New(life *lifecycle.Lifecycle, svc facade.Service, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewMock()
	}
	return &Manager{
		life:      life,
		svc:       svc,
		log:       log,
		callbacks: make(map[uint32]Callback),
	}
}

// CreateSubscription submits req and, once the server assigns a
// subscription id, registers cb to receive its notifications. The
// Publish loop starts on the very first subscription (§4.7).
func (m *Manager) CreateSubscription(ctx context.Context, req *ua.CreateSubscriptionRequest, cb Callback) (*ua.CreateSubscriptionResponse, error) {
	resp, err := m.svc.CreateSubscription(ctx, req)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.callbacks[resp.SubscriptionID] = cb
	start := !m.running
	m.running = true
	m.mu.Unlock()

	if start {
		m.publish(nil)
	}
	return resp, nil
}

// DeleteSubscriptions submits req and unregisters every id it named,
// regardless of per-id status: the server will not deliver further
// notifications for them either way (§4.7).
func (m *Manager) DeleteSubscriptions(ctx context.Context, req *ua.DeleteSubscriptionsRequest) (*ua.DeleteSubscriptionsResponse, error) {
	resp, err := m.svc.DeleteSubscriptions(ctx, req)

	m.mu.Lock()
	for _, id := range req.SubscriptionIDs {
		delete(m.callbacks, id)
	}
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// publish issues one PublishRequest with no local timeout, acknowledging
// acks, and registers onPublishComplete as its async sink (§4.7, §5).
func (m *Manager) publish(acks []ua.SubscriptionAcknowledgement) {
	req := &ua.PublishRequest{SubscriptionAcknowledgements: acks}
	req.Header = m.life.NewRequestHeader(0)
	req.Header.AuthenticationToken = m.life.AuthenticationToken()

	if _, err := m.life.Mux().SendAsync(req, mux.Options{Timeout: 0}, m.onPublishComplete); err != nil {
		m.log.Warn(fmt.Sprintf("subscription: failed to issue publish: %s", err))
	}
}

// onPublishComplete is the completion handler described in §4.7.
func (m *Manager) onPublishComplete(body []byte, err error) {
	if err != nil {
		m.handleFailure(err)
		return
	}

	checked, err := mux.CheckAnswer(body)
	if err != nil {
		m.handleFailure(err)
		return
	}

	b, err := ua.DecodeBody(checked)
	if err != nil {
		m.log.Warn(fmt.Sprintf("subscription: publish response decode failed, retrying: %s", err))
		m.publish(nil)
		return
	}
	resp, ok := b.(*ua.PublishResponse)
	if !ok {
		m.log.Warn("subscription: unexpected publish response type, retrying")
		m.publish(nil)
		return
	}
	if serr := resp.Header.ServiceResult.Check(); serr != nil {
		m.handleFailure(serr)
		return
	}

	m.mu.Lock()
	cb, ok := m.callbacks[resp.SubscriptionID]
	m.mu.Unlock()
	if !ok {
		m.log.Warn(fmt.Sprintf("subscription: notification for unknown subscription %d, discarded", resp.SubscriptionID))
	} else {
		m.invoke(cb, resp.NotificationMessage)
	}

	ack := ua.SubscriptionAcknowledgement{
		SubscriptionID: resp.SubscriptionID,
		SequenceNumber: resp.NotificationMessage.SequenceNumber,
	}
	m.publish([]ua.SubscriptionAcknowledgement{ack})
}

// handleFailure applies the status-specific handling of §4.7 item 1:
// BadTimeout re-issues the publish, BadNoSubscription stops the loop,
// anything else is logged and the loop is kept alive by re-issuing too
// (a single dropped Publish should not stall the server indefinitely).
func (m *Manager) handleFailure(err error) {
	switch {
	case isStatus(err, ua.StatusBadTimeout):
		m.publish(nil)
	case isStatus(err, ua.StatusBadNoSubscription):
		m.log.Info("subscription: no subscription remains, publish loop stopped")
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	default:
		m.log.Warn(fmt.Sprintf("subscription: publish failed, retrying: %s", err))
		m.publish(nil)
	}
}

// invoke calls cb, recovering and logging any panic so the loop is
// never brought down by callback misbehavior (§4.7 item 3).
func (m *Manager) invoke(cb Callback, msg ua.NotificationMessage) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error(fmt.Sprintf("subscription: callback panicked: %v", r))
		}
	}()
	cb(msg)
}

// isStatus reports whether err is, or wraps (via errors.Wrap's chain,
// e.g. mux.CheckAnswer's ServiceFault wrapping), the given status code.
func isStatus(err error, code ua.StatusCode) bool {
	if sc, ok := err.(ua.StatusCode); ok {
		return sc == code
	}
	if ee, ok := err.(errors.Error); ok {
		return errors.Contains(ee, code)
	}
	return false
}
