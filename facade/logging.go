// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package facade

import (
	"context"
	"fmt"
	"time"

	"github.com/absmach/opcua-client/logger"
	"github.com/absmach/opcua-client/ua"
)

var _ Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger logger.Logger
	svc    Service
}

// LoggingMiddleware adds logging facilities to the core service.
func LoggingMiddleware(svc Service, logger logger.Logger) Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (lm loggingMiddleware) CreateSession(ctx context.Context, req *ua.CreateSessionRequest) (resp *ua.CreateSessionResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("create_session %s took %s to complete", req.SessionName, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.CreateSession(ctx, req)
}

func (lm loggingMiddleware) ActivateSession(ctx context.Context, req *ua.ActivateSessionRequest) (resp *ua.ActivateSessionResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("activate_session took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.ActivateSession(ctx, req)
}

func (lm loggingMiddleware) CloseSession(ctx context.Context, req *ua.CloseSessionRequest) (resp *ua.CloseSessionResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("close_session took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.CloseSession(ctx, req)
}

func (lm loggingMiddleware) GetEndpoints(ctx context.Context, req *ua.GetEndpointsRequest) (resp *ua.GetEndpointsResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("get_endpoints %s took %s to complete", req.EndpointURL, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.GetEndpoints(ctx, req)
}

func (lm loggingMiddleware) FindServers(ctx context.Context, req *ua.FindServersRequest) (resp *ua.FindServersResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("find_servers %s took %s to complete", req.EndpointURL, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.FindServers(ctx, req)
}

func (lm loggingMiddleware) FindServersOnNetwork(ctx context.Context, req *ua.FindServersOnNetworkRequest) (resp *ua.FindServersOnNetworkResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("find_servers_on_network took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.FindServersOnNetwork(ctx, req)
}

func (lm loggingMiddleware) RegisterServer(ctx context.Context, req *ua.RegisterServerRequest) (err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("register_server took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.RegisterServer(ctx, req)
}

func (lm loggingMiddleware) RegisterServer2(ctx context.Context, req *ua.RegisterServer2Request) (res []ua.StatusCode, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("register_server_2 took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.RegisterServer2(ctx, req)
}

func (lm loggingMiddleware) Browse(ctx context.Context, req *ua.BrowseRequest) (resp *ua.BrowseResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("browse %d nodes took %s to complete", len(req.NodesToBrowse), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Browse(ctx, req)
}

func (lm loggingMiddleware) BrowseNext(ctx context.Context, req *ua.BrowseNextRequest) (resp *ua.BrowseNextResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("browse_next took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.BrowseNext(ctx, req)
}

func (lm loggingMiddleware) TranslateBrowsePathsToNodeIDs(ctx context.Context, req *ua.TranslateBrowsePathsToNodeIDsRequest) (resp *ua.TranslateBrowsePathsToNodeIDsResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("translate_browse_paths_to_node_ids took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.TranslateBrowsePathsToNodeIDs(ctx, req)
}

func (lm loggingMiddleware) Read(ctx context.Context, req *ua.ReadRequest) (resp *ua.ReadResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("read %d nodes took %s to complete", len(req.NodesToRead), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Read(ctx, req)
}

func (lm loggingMiddleware) Write(ctx context.Context, req *ua.WriteRequest) (resp *ua.WriteResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("write %d nodes took %s to complete", len(req.NodesToWrite), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Write(ctx, req)
}

func (lm loggingMiddleware) HistoryRead(ctx context.Context, req *ua.HistoryReadRequest) (resp *ua.HistoryReadResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("history_read %d nodes took %s to complete", len(req.NodesToRead), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.HistoryRead(ctx, req)
}

func (lm loggingMiddleware) Call(ctx context.Context, req *ua.CallRequest) (resp *ua.CallResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("call %d methods took %s to complete", len(req.MethodsToCall), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Call(ctx, req)
}

func (lm loggingMiddleware) AddNodes(ctx context.Context, req *ua.AddNodesRequest) (resp *ua.AddNodesResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("add_nodes %d items took %s to complete", len(req.NodesToAdd), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.AddNodes(ctx, req)
}

func (lm loggingMiddleware) AddReferences(ctx context.Context, req *ua.AddReferencesRequest) (resp *ua.AddReferencesResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("add_references %d items took %s to complete", len(req.ReferencesToAdd), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.AddReferences(ctx, req)
}

func (lm loggingMiddleware) DeleteReferences(ctx context.Context, req *ua.DeleteReferencesRequest) (resp *ua.DeleteReferencesResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("delete_references %d items took %s to complete", len(req.ReferencesToDelete), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.DeleteReferences(ctx, req)
}

func (lm loggingMiddleware) DeleteNodes(ctx context.Context, req *ua.DeleteNodesRequest) (resp *ua.DeleteNodesResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("delete_nodes %d items took %s to complete", len(req.NodesToDelete), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.DeleteNodes(ctx, req)
}

func (lm loggingMiddleware) CreateSubscription(ctx context.Context, req *ua.CreateSubscriptionRequest) (resp *ua.CreateSubscriptionResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("create_subscription took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.CreateSubscription(ctx, req)
}

func (lm loggingMiddleware) DeleteSubscriptions(ctx context.Context, req *ua.DeleteSubscriptionsRequest) (resp *ua.DeleteSubscriptionsResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("delete_subscriptions %d ids took %s to complete", len(req.SubscriptionIDs), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.DeleteSubscriptions(ctx, req)
}

func (lm loggingMiddleware) CreateMonitoredItems(ctx context.Context, req *ua.CreateMonitoredItemsRequest) (resp *ua.CreateMonitoredItemsResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("create_monitored_items %d items took %s to complete", len(req.ItemsToCreate), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.CreateMonitoredItems(ctx, req)
}

func (lm loggingMiddleware) ModifyMonitoredItems(ctx context.Context, req *ua.ModifyMonitoredItemsRequest) (resp *ua.ModifyMonitoredItemsResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("modify_monitored_items %d items took %s to complete", len(req.ItemsToModify), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.ModifyMonitoredItems(ctx, req)
}

func (lm loggingMiddleware) DeleteMonitoredItems(ctx context.Context, req *ua.DeleteMonitoredItemsRequest) (resp *ua.DeleteMonitoredItemsResponse, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("delete_monitored_items %d ids took %s to complete", len(req.MonitoredItemIDs), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.DeleteMonitoredItems(ctx, req)
}
