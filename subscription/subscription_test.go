// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/absmach/opcua-client/facade"
	"github.com/absmach/opcua-client/internal/lifecycletest"
	"github.com/absmach/opcua-client/lifecycle"
	"github.com/absmach/opcua-client/logger"
	"github.com/absmach/opcua-client/subscription"
	"github.com/absmach/opcua-client/ua"
)

func connect(t *testing.T) (*lifecycle.Lifecycle, *lifecycletest.Server) {
	t.Helper()
	srv, dial := lifecycletest.New()
	go func() { _ = srv.HandleHandshake(lifecycletest.DefaultToken, 600000) }()

	lc := lifecycle.New(lifecycle.Config{EndpointURL: "opc.tcp://localhost:4840"}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, lc.Connect(ctx, dial, "tcp", "localhost:4840"))
	return lc, srv
}

func TestPublishLoopDeliversNotificationAndStops(t *testing.T) {
	lc, srv := connect(t)
	defer lc.Close()

	svc := facade.New(lc, 2*time.Second)
	mgr := subscription.New(lc, svc, logger.NewMock())

	done := make(chan struct{})
	go func() {
		defer close(done)

		reqID, body, err := srv.ReadRequest()
		assert.NoError(t, err)
		_, ok := body.(*ua.CreateSubscriptionRequest)
		assert.True(t, ok)
		assert.NoError(t, srv.Respond(reqID, &ua.CreateSubscriptionResponse{
			Header:         ua.ResponseHeader{ServiceResult: ua.StatusGood},
			SubscriptionID: 5,
		}))

		reqID, body, err = srv.ReadRequest()
		assert.NoError(t, err)
		pub, ok := body.(*ua.PublishRequest)
		assert.True(t, ok)
		assert.Empty(t, pub.SubscriptionAcknowledgements)
		assert.NoError(t, srv.Respond(reqID, &ua.PublishResponse{
			Header:         ua.ResponseHeader{ServiceResult: ua.StatusGood},
			SubscriptionID: 5,
			NotificationMessage: ua.NotificationMessage{
				SequenceNumber: 1,
				NotificationData: []ua.MonitoredItemNotification{
					{ClientHandle: 9, Value: ua.DataValue{HasValue: true, Value: ua.NewVariant(int32(42))}},
				},
			},
		}))

		reqID, body, err = srv.ReadRequest()
		assert.NoError(t, err)
		pub, ok = body.(*ua.PublishRequest)
		assert.True(t, ok)
		assert.Equal(t, []ua.SubscriptionAcknowledgement{{SubscriptionID: 5, SequenceNumber: 1}}, pub.SubscriptionAcknowledgements)
		assert.NoError(t, srv.Respond(reqID, &ua.ServiceFault{
			Header: ua.ResponseHeader{ServiceResult: ua.StatusBadNoSubscription},
		}))
	}()

	notifCh := make(chan ua.NotificationMessage, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := mgr.CreateSubscription(ctx, &ua.CreateSubscriptionRequest{}, func(msg ua.NotificationMessage) {
		notifCh <- msg
	})
	assert.NoError(t, err)

	select {
	case msg := <-notifCh:
		assert.Equal(t, uint32(1), msg.SequenceNumber)
		assert.Len(t, msg.NotificationData, 1)
		assert.Equal(t, uint32(9), msg.NotificationData[0].ClientHandle)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the publish loop to stop")
	}
}

func TestCallbackPanicDoesNotStopLoop(t *testing.T) {
	lc, srv := connect(t)
	defer lc.Close()

	svc := facade.New(lc, 2*time.Second)
	mgr := subscription.New(lc, svc, logger.NewMock())

	done := make(chan struct{})
	go func() {
		defer close(done)

		reqID, _, err := srv.ReadRequest()
		assert.NoError(t, err)
		assert.NoError(t, srv.Respond(reqID, &ua.CreateSubscriptionResponse{
			Header:         ua.ResponseHeader{ServiceResult: ua.StatusGood},
			SubscriptionID: 3,
		}))

		reqID, _, err = srv.ReadRequest()
		assert.NoError(t, err)
		assert.NoError(t, srv.Respond(reqID, &ua.PublishResponse{
			Header:         ua.ResponseHeader{ServiceResult: ua.StatusGood},
			SubscriptionID: 3,
			NotificationMessage: ua.NotificationMessage{
				SequenceNumber:   1,
				NotificationData: []ua.MonitoredItemNotification{{ClientHandle: 1}},
			},
		}))

		// The loop must still re-issue Publish even though the callback
		// below panics.
		reqID, body, err := srv.ReadRequest()
		assert.NoError(t, err)
		_, ok := body.(*ua.PublishRequest)
		assert.True(t, ok)
		assert.NoError(t, srv.Respond(reqID, &ua.ServiceFault{
			Header: ua.ResponseHeader{ServiceResult: ua.StatusBadNoSubscription},
		}))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := mgr.CreateSubscription(ctx, &ua.CreateSubscriptionRequest{}, func(ua.NotificationMessage) {
		panic("callback exploded")
	})
	assert.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the publish loop to survive the panic")
	}
}
