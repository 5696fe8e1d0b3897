// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains opcuaclient's main function: a minimal runner
// that dials an OPC UA server, reads its NamespaceArray once, and keeps
// the connection open until interrupted.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v7"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/gofrs/uuid"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/absmach/opcua-client/client"
	"github.com/absmach/opcua-client/facade"
	mglog "github.com/absmach/opcua-client/logger"
	"github.com/absmach/opcua-client/ua"
)

const svcName = "opcua-client"

type config struct {
	LogLevel       string        `env:"OPCUA_CLIENT_LOG_LEVEL" envDefault:"info"`
	EndpointURL    string        `env:"OPCUA_CLIENT_ENDPOINT_URL" envDefault:"opc.tcp://localhost:4840"`
	RequestTimeout time.Duration `env:"OPCUA_CLIENT_REQUEST_TIMEOUT" envDefault:"10s"`
	InstanceID     string        `env:"OPCUA_CLIENT_INSTANCE_ID" envDefault:""`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration: %s", svcName, err)
	}

	logger, err := mglog.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %s", err)
	}

	var exitCode int
	defer mglog.ExitWithError(&exitCode)

	if cfg.InstanceID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			logger.Error(fmt.Sprintf("failed to generate instance id: %s", err))
			exitCode = 1
			return
		}
		cfg.InstanceID = id.String()
	}
	logger.Info(fmt.Sprintf("starting %s instance %s", svcName, cfg.InstanceID))

	c := client.New(cfg.EndpointURL,
		client.WithLogger(logger),
		client.WithDefaultTimeout(cfg.RequestTimeout),
	)

	if err := c.Dial(ctx); err != nil {
		logger.Error(fmt.Sprintf("failed to connect to %s: %s", cfg.EndpointURL, err))
		exitCode = 1
		return
	}
	defer c.Close()

	svc := instrument(c.Service(), logger)

	g.Go(func() error {
		return run(ctx, svc, logger)
	})

	<-ctx.Done()
	logger.Info(fmt.Sprintf("%s shutting down", svcName))
	if err := g.Wait(); err != nil {
		logger.Warn(fmt.Sprintf("%s terminated: %s", svcName, err))
	}
}

// instrument wraps svc with the logging and metrics middleware the
// rest of the client core uses.
func instrument(svc facade.Service, logger mglog.Logger) facade.Service {
	svc = facade.LoggingMiddleware(svc, logger)
	svc = facade.MetricsMiddleware(
		svc,
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "opcua",
			Subsystem: "client",
			Name:      "request_count",
			Help:      "Number of service requests made.",
		}, []string{"method"}),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "opcua",
			Subsystem: "client",
			Name:      "request_latency_seconds",
			Help:      "Total duration of service requests in seconds.",
		}, []string{"method"}),
	)
	return svc
}

// run reads the server's NamespaceArray and then idles, keeping the
// client's receive and renewal tasks alive until ctx is cancelled.
func run(ctx context.Context, svc facade.Service, logger mglog.Logger) error {
	req := &ua.ReadRequest{
		NodesToRead: []ua.ReadValueID{
			{NodeID: ua.NewNumericNodeID(0, 2255), AttributeID: ua.AttributeIDValue},
		},
	}
	resp, err := svc.Read(ctx, req)
	if err != nil {
		logger.Warn(fmt.Sprintf("read NamespaceArray failed: %s", err))
	} else {
		for _, r := range resp.Results {
			logger.Info(fmt.Sprintf("NamespaceArray: %v", r.Value.Value))
		}
	}

	<-ctx.Done()
	return nil
}
