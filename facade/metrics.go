// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package facade

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/absmach/opcua-client/ua"
)

var _ Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     Service
}

// MetricsMiddleware instruments core service by tracking request count and latency.
func MetricsMiddleware(svc Service, counter metrics.Counter, latency metrics.Histogram) Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) observe(method string, begin time.Time) {
	mm.counter.With("method", method).Add(1)
	mm.latency.With("method", method).Observe(time.Since(begin).Seconds())
}

func (mm *metricsMiddleware) CreateSession(ctx context.Context, req *ua.CreateSessionRequest) (*ua.CreateSessionResponse, error) {
	defer func(begin time.Time) { mm.observe("create_session", begin) }(time.Now())
	return mm.svc.CreateSession(ctx, req)
}

func (mm *metricsMiddleware) ActivateSession(ctx context.Context, req *ua.ActivateSessionRequest) (*ua.ActivateSessionResponse, error) {
	defer func(begin time.Time) { mm.observe("activate_session", begin) }(time.Now())
	return mm.svc.ActivateSession(ctx, req)
}

func (mm *metricsMiddleware) CloseSession(ctx context.Context, req *ua.CloseSessionRequest) (*ua.CloseSessionResponse, error) {
	defer func(begin time.Time) { mm.observe("close_session", begin) }(time.Now())
	return mm.svc.CloseSession(ctx, req)
}

func (mm *metricsMiddleware) GetEndpoints(ctx context.Context, req *ua.GetEndpointsRequest) (*ua.GetEndpointsResponse, error) {
	defer func(begin time.Time) { mm.observe("get_endpoints", begin) }(time.Now())
	return mm.svc.GetEndpoints(ctx, req)
}

func (mm *metricsMiddleware) FindServers(ctx context.Context, req *ua.FindServersRequest) (*ua.FindServersResponse, error) {
	defer func(begin time.Time) { mm.observe("find_servers", begin) }(time.Now())
	return mm.svc.FindServers(ctx, req)
}

func (mm *metricsMiddleware) FindServersOnNetwork(ctx context.Context, req *ua.FindServersOnNetworkRequest) (*ua.FindServersOnNetworkResponse, error) {
	defer func(begin time.Time) { mm.observe("find_servers_on_network", begin) }(time.Now())
	return mm.svc.FindServersOnNetwork(ctx, req)
}

func (mm *metricsMiddleware) RegisterServer(ctx context.Context, req *ua.RegisterServerRequest) error {
	defer func(begin time.Time) { mm.observe("register_server", begin) }(time.Now())
	return mm.svc.RegisterServer(ctx, req)
}

func (mm *metricsMiddleware) RegisterServer2(ctx context.Context, req *ua.RegisterServer2Request) ([]ua.StatusCode, error) {
	defer func(begin time.Time) { mm.observe("register_server_2", begin) }(time.Now())
	return mm.svc.RegisterServer2(ctx, req)
}

func (mm *metricsMiddleware) Browse(ctx context.Context, req *ua.BrowseRequest) (*ua.BrowseResponse, error) {
	defer func(begin time.Time) { mm.observe("browse", begin) }(time.Now())
	return mm.svc.Browse(ctx, req)
}

func (mm *metricsMiddleware) BrowseNext(ctx context.Context, req *ua.BrowseNextRequest) (*ua.BrowseNextResponse, error) {
	defer func(begin time.Time) { mm.observe("browse_next", begin) }(time.Now())
	return mm.svc.BrowseNext(ctx, req)
}

func (mm *metricsMiddleware) TranslateBrowsePathsToNodeIDs(ctx context.Context, req *ua.TranslateBrowsePathsToNodeIDsRequest) (*ua.TranslateBrowsePathsToNodeIDsResponse, error) {
	defer func(begin time.Time) { mm.observe("translate_browse_paths_to_node_ids", begin) }(time.Now())
	return mm.svc.TranslateBrowsePathsToNodeIDs(ctx, req)
}

func (mm *metricsMiddleware) Read(ctx context.Context, req *ua.ReadRequest) (*ua.ReadResponse, error) {
	defer func(begin time.Time) { mm.observe("read", begin) }(time.Now())
	return mm.svc.Read(ctx, req)
}

func (mm *metricsMiddleware) Write(ctx context.Context, req *ua.WriteRequest) (*ua.WriteResponse, error) {
	defer func(begin time.Time) { mm.observe("write", begin) }(time.Now())
	return mm.svc.Write(ctx, req)
}

func (mm *metricsMiddleware) HistoryRead(ctx context.Context, req *ua.HistoryReadRequest) (*ua.HistoryReadResponse, error) {
	defer func(begin time.Time) { mm.observe("history_read", begin) }(time.Now())
	return mm.svc.HistoryRead(ctx, req)
}

func (mm *metricsMiddleware) Call(ctx context.Context, req *ua.CallRequest) (*ua.CallResponse, error) {
	defer func(begin time.Time) { mm.observe("call", begin) }(time.Now())
	return mm.svc.Call(ctx, req)
}

func (mm *metricsMiddleware) AddNodes(ctx context.Context, req *ua.AddNodesRequest) (*ua.AddNodesResponse, error) {
	defer func(begin time.Time) { mm.observe("add_nodes", begin) }(time.Now())
	return mm.svc.AddNodes(ctx, req)
}

func (mm *metricsMiddleware) AddReferences(ctx context.Context, req *ua.AddReferencesRequest) (*ua.AddReferencesResponse, error) {
	defer func(begin time.Time) { mm.observe("add_references", begin) }(time.Now())
	return mm.svc.AddReferences(ctx, req)
}

func (mm *metricsMiddleware) DeleteReferences(ctx context.Context, req *ua.DeleteReferencesRequest) (*ua.DeleteReferencesResponse, error) {
	defer func(begin time.Time) { mm.observe("delete_references", begin) }(time.Now())
	return mm.svc.DeleteReferences(ctx, req)
}

func (mm *metricsMiddleware) DeleteNodes(ctx context.Context, req *ua.DeleteNodesRequest) (*ua.DeleteNodesResponse, error) {
	defer func(begin time.Time) { mm.observe("delete_nodes", begin) }(time.Now())
	return mm.svc.DeleteNodes(ctx, req)
}

func (mm *metricsMiddleware) CreateSubscription(ctx context.Context, req *ua.CreateSubscriptionRequest) (*ua.CreateSubscriptionResponse, error) {
	defer func(begin time.Time) { mm.observe("create_subscription", begin) }(time.Now())
	return mm.svc.CreateSubscription(ctx, req)
}

func (mm *metricsMiddleware) DeleteSubscriptions(ctx context.Context, req *ua.DeleteSubscriptionsRequest) (*ua.DeleteSubscriptionsResponse, error) {
	defer func(begin time.Time) { mm.observe("delete_subscriptions", begin) }(time.Now())
	return mm.svc.DeleteSubscriptions(ctx, req)
}

func (mm *metricsMiddleware) CreateMonitoredItems(ctx context.Context, req *ua.CreateMonitoredItemsRequest) (*ua.CreateMonitoredItemsResponse, error) {
	defer func(begin time.Time) { mm.observe("create_monitored_items", begin) }(time.Now())
	return mm.svc.CreateMonitoredItems(ctx, req)
}

func (mm *metricsMiddleware) ModifyMonitoredItems(ctx context.Context, req *ua.ModifyMonitoredItemsRequest) (*ua.ModifyMonitoredItemsResponse, error) {
	defer func(begin time.Time) { mm.observe("modify_monitored_items", begin) }(time.Now())
	return mm.svc.ModifyMonitoredItems(ctx, req)
}

func (mm *metricsMiddleware) DeleteMonitoredItems(ctx context.Context, req *ua.DeleteMonitoredItemsRequest) (*ua.DeleteMonitoredItemsResponse, error) {
	defer func(begin time.Time) { mm.observe("delete_monitored_items", begin) }(time.Now())
	return mm.svc.DeleteMonitoredItems(ctx, req)
}
