// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package facade is the Session & Service Façade (C6): a thin,
// stateless layer that builds typed requests, submits them through the
// multiplexer, checks the service result, and returns typed responses.
package facade

import (
	"context"
	"time"

	"github.com/absmach/opcua-client/errors"
	"github.com/absmach/opcua-client/lifecycle"
	"github.com/absmach/opcua-client/mux"
	"github.com/absmach/opcua-client/ua"
)

// Service is the façade's public surface: one method per OPC UA
// service listed in §4.6 of spec.md.
type Service interface {
	CreateSession(ctx context.Context, req *ua.CreateSessionRequest) (*ua.CreateSessionResponse, error)
	ActivateSession(ctx context.Context, req *ua.ActivateSessionRequest) (*ua.ActivateSessionResponse, error)
	CloseSession(ctx context.Context, req *ua.CloseSessionRequest) (*ua.CloseSessionResponse, error)

	GetEndpoints(ctx context.Context, req *ua.GetEndpointsRequest) (*ua.GetEndpointsResponse, error)
	FindServers(ctx context.Context, req *ua.FindServersRequest) (*ua.FindServersResponse, error)
	FindServersOnNetwork(ctx context.Context, req *ua.FindServersOnNetworkRequest) (*ua.FindServersOnNetworkResponse, error)
	RegisterServer(ctx context.Context, req *ua.RegisterServerRequest) error
	RegisterServer2(ctx context.Context, req *ua.RegisterServer2Request) ([]ua.StatusCode, error)

	Browse(ctx context.Context, req *ua.BrowseRequest) (*ua.BrowseResponse, error)
	BrowseNext(ctx context.Context, req *ua.BrowseNextRequest) (*ua.BrowseNextResponse, error)
	TranslateBrowsePathsToNodeIDs(ctx context.Context, req *ua.TranslateBrowsePathsToNodeIDsRequest) (*ua.TranslateBrowsePathsToNodeIDsResponse, error)

	Read(ctx context.Context, req *ua.ReadRequest) (*ua.ReadResponse, error)
	Write(ctx context.Context, req *ua.WriteRequest) (*ua.WriteResponse, error)
	HistoryRead(ctx context.Context, req *ua.HistoryReadRequest) (*ua.HistoryReadResponse, error)
	Call(ctx context.Context, req *ua.CallRequest) (*ua.CallResponse, error)

	AddNodes(ctx context.Context, req *ua.AddNodesRequest) (*ua.AddNodesResponse, error)
	AddReferences(ctx context.Context, req *ua.AddReferencesRequest) (*ua.AddReferencesResponse, error)
	DeleteReferences(ctx context.Context, req *ua.DeleteReferencesRequest) (*ua.DeleteReferencesResponse, error)
	DeleteNodes(ctx context.Context, req *ua.DeleteNodesRequest) (*ua.DeleteNodesResponse, error)

	CreateSubscription(ctx context.Context, req *ua.CreateSubscriptionRequest) (*ua.CreateSubscriptionResponse, error)
	DeleteSubscriptions(ctx context.Context, req *ua.DeleteSubscriptionsRequest) (*ua.DeleteSubscriptionsResponse, error)
	CreateMonitoredItems(ctx context.Context, req *ua.CreateMonitoredItemsRequest) (*ua.CreateMonitoredItemsResponse, error)
	ModifyMonitoredItems(ctx context.Context, req *ua.ModifyMonitoredItemsRequest) (*ua.ModifyMonitoredItemsResponse, error)
	DeleteMonitoredItems(ctx context.Context, req *ua.DeleteMonitoredItemsRequest) (*ua.DeleteMonitoredItemsResponse, error)
}

var _ Service = (*service)(nil)

type service struct {
	life    *lifecycle.Lifecycle
	timeout time.Duration
}

// New returns a Service calling through life's multiplexer, applying
// timeout as the default per-request deadline (§6 of spec.md).
func New(life *lifecycle.Lifecycle, timeout time.Duration) Service {
	return &service{life: life, timeout: timeout}
}

// invoke runs the five common steps of §4.6 for one request/response
// pair: stamp the header, submit through the mux, run check_answer,
// decode as T, and check the ServiceResult.
func invoke[T ua.Response](ctx context.Context, s *service, req ua.Request) (T, error) {
	var zero T

	h := req.GetHeader()
	h.AuthenticationToken = s.life.AuthenticationToken()
	h.TimeoutHint = uint32(s.timeout.Milliseconds())
	req.SetHeader(h)

	body, err := s.life.Mux().SendRequest(ctx, req, mux.Options{Timeout: s.timeout})
	if err != nil {
		return zero, err
	}
	checked, err := mux.CheckAnswer(body)
	if err != nil {
		return zero, err
	}
	b, err := ua.DecodeBody(checked)
	if err != nil {
		return zero, err
	}
	resp, ok := b.(T)
	if !ok {
		return zero, errors.ErrProtocol
	}
	if err := resp.GetResponseHeader().ServiceResult.Check(); err != nil {
		return zero, err
	}
	return resp, nil
}

func (s *service) CreateSession(ctx context.Context, req *ua.CreateSessionRequest) (*ua.CreateSessionResponse, error) {
	resp, err := invoke[*ua.CreateSessionResponse](ctx, s, req)
	if err != nil {
		return nil, err
	}
	// §4.6 item 1: every subsequent request header carries this token.
	s.life.SetAuthenticationToken(resp.AuthenticationToken)
	return resp, nil
}

func (s *service) ActivateSession(ctx context.Context, req *ua.ActivateSessionRequest) (*ua.ActivateSessionResponse, error) {
	return invoke[*ua.ActivateSessionResponse](ctx, s, req)
}

func (s *service) CloseSession(ctx context.Context, req *ua.CloseSessionRequest) (*ua.CloseSessionResponse, error) {
	resp, err := invoke[*ua.CloseSessionResponse](ctx, s, req)
	if err != nil {
		// §4.6 item 3 / §8 scenario 6: BadSessionClosed during close is
		// the expected outcome when a Publish is still in flight, and is
		// not treated as a failure.
		if code, ok := err.(ua.StatusCode); ok && code == ua.StatusBadSessionClosed {
			return &ua.CloseSessionResponse{}, nil
		}
		if ee, ok := err.(errors.Error); ok && errors.Contains(ee, ua.StatusBadSessionClosed) {
			return &ua.CloseSessionResponse{}, nil
		}
		return nil, err
	}
	return resp, nil
}

func (s *service) GetEndpoints(ctx context.Context, req *ua.GetEndpointsRequest) (*ua.GetEndpointsResponse, error) {
	return invoke[*ua.GetEndpointsResponse](ctx, s, req)
}

func (s *service) FindServers(ctx context.Context, req *ua.FindServersRequest) (*ua.FindServersResponse, error) {
	return invoke[*ua.FindServersResponse](ctx, s, req)
}

func (s *service) FindServersOnNetwork(ctx context.Context, req *ua.FindServersOnNetworkRequest) (*ua.FindServersOnNetworkResponse, error) {
	return invoke[*ua.FindServersOnNetworkResponse](ctx, s, req)
}

// RegisterServer preserves the Open Question behavior documented in
// §9 of spec.md: the caller never sees a response body, only whether
// the service result was good.
func (s *service) RegisterServer(ctx context.Context, req *ua.RegisterServerRequest) error {
	_, err := invoke[*ua.RegisterServerResponse](ctx, s, req)
	return err
}

// RegisterServer2 returns ConfigurationResults even when the overall
// call is good, since they carry per-item statuses (§9).
func (s *service) RegisterServer2(ctx context.Context, req *ua.RegisterServer2Request) ([]ua.StatusCode, error) {
	resp, err := invoke[*ua.RegisterServer2Response](ctx, s, req)
	if err != nil {
		return nil, err
	}
	return resp.ConfigurationResults, nil
}

func (s *service) Browse(ctx context.Context, req *ua.BrowseRequest) (*ua.BrowseResponse, error) {
	return invoke[*ua.BrowseResponse](ctx, s, req)
}

func (s *service) BrowseNext(ctx context.Context, req *ua.BrowseNextRequest) (*ua.BrowseNextResponse, error) {
	return invoke[*ua.BrowseNextResponse](ctx, s, req)
}

func (s *service) TranslateBrowsePathsToNodeIDs(ctx context.Context, req *ua.TranslateBrowsePathsToNodeIDsRequest) (*ua.TranslateBrowsePathsToNodeIDsResponse, error) {
	return invoke[*ua.TranslateBrowsePathsToNodeIDsResponse](ctx, s, req)
}

// Read post-processes NodeClass/ValueRank attributes into their
// enumeration types (§4.6 item 2).
func (s *service) Read(ctx context.Context, req *ua.ReadRequest) (*ua.ReadResponse, error) {
	resp, err := invoke[*ua.ReadResponse](ctx, s, req)
	if err != nil {
		return nil, err
	}
	for i, result := range resp.Results {
		if i >= len(req.NodesToRead) || !result.HasValue {
			continue
		}
		switch req.NodesToRead[i].AttributeID {
		case ua.AttributeIDNodeClass:
			if v, ok := result.Value.Value.(int32); ok {
				resp.Results[i].Value.Value = ua.NodeClass(v)
			}
		case ua.AttributeIDValueRank:
			if v, ok := result.Value.Value.(int32); ok && ua.IsDefinedValueRank(v) {
				resp.Results[i].Value.Value = ua.ValueRank(v)
			}
		}
	}
	return resp, nil
}

func (s *service) Write(ctx context.Context, req *ua.WriteRequest) (*ua.WriteResponse, error) {
	return invoke[*ua.WriteResponse](ctx, s, req)
}

func (s *service) HistoryRead(ctx context.Context, req *ua.HistoryReadRequest) (*ua.HistoryReadResponse, error) {
	return invoke[*ua.HistoryReadResponse](ctx, s, req)
}

func (s *service) Call(ctx context.Context, req *ua.CallRequest) (*ua.CallResponse, error) {
	return invoke[*ua.CallResponse](ctx, s, req)
}

func (s *service) AddNodes(ctx context.Context, req *ua.AddNodesRequest) (*ua.AddNodesResponse, error) {
	return invoke[*ua.AddNodesResponse](ctx, s, req)
}

func (s *service) AddReferences(ctx context.Context, req *ua.AddReferencesRequest) (*ua.AddReferencesResponse, error) {
	return invoke[*ua.AddReferencesResponse](ctx, s, req)
}

func (s *service) DeleteReferences(ctx context.Context, req *ua.DeleteReferencesRequest) (*ua.DeleteReferencesResponse, error) {
	return invoke[*ua.DeleteReferencesResponse](ctx, s, req)
}

func (s *service) DeleteNodes(ctx context.Context, req *ua.DeleteNodesRequest) (*ua.DeleteNodesResponse, error) {
	return invoke[*ua.DeleteNodesResponse](ctx, s, req)
}

func (s *service) CreateSubscription(ctx context.Context, req *ua.CreateSubscriptionRequest) (*ua.CreateSubscriptionResponse, error) {
	return invoke[*ua.CreateSubscriptionResponse](ctx, s, req)
}

func (s *service) DeleteSubscriptions(ctx context.Context, req *ua.DeleteSubscriptionsRequest) (*ua.DeleteSubscriptionsResponse, error) {
	return invoke[*ua.DeleteSubscriptionsResponse](ctx, s, req)
}

func (s *service) CreateMonitoredItems(ctx context.Context, req *ua.CreateMonitoredItemsRequest) (*ua.CreateMonitoredItemsResponse, error) {
	return invoke[*ua.CreateMonitoredItemsResponse](ctx, s, req)
}

func (s *service) ModifyMonitoredItems(ctx context.Context, req *ua.ModifyMonitoredItemsRequest) (*ua.ModifyMonitoredItemsResponse, error) {
	return invoke[*ua.ModifyMonitoredItemsResponse](ctx, s, req)
}

func (s *service) DeleteMonitoredItems(ctx context.Context, req *ua.DeleteMonitoredItemsRequest) (*ua.DeleteMonitoredItemsResponse, error) {
	return invoke[*ua.DeleteMonitoredItemsResponse](ctx, s, req)
}
