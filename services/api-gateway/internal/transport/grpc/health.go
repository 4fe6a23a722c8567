package grpc_server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check service key for the gateway's backend link.
const ServiceName = "learnboard.Gateway"

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReporter publishes backend reachability through grpc.health.v1.
type HealthReporter struct {
	server  *health.Server
	backend Pinger
	logger  *slog.Logger
}

func NewHealthReporter(backend Pinger, logger *slog.Logger) *HealthReporter {
	return &HealthReporter{
		server:  health.NewServer(),
		backend: backend,
		logger:  logger,
	}
}

// NewServer builds a gRPC server with the health and reflection services registered.
func (h *HealthReporter) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(s, h.server)
	reflection.Register(s)
	return s
}

// Probe pings the backend once and updates the published status.
func (h *HealthReporter) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.backend.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "Backend probe failed", slog.Any("error", err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

// Run probes every interval until ctx is done, then marks everything NOT_SERVING.
func (h *HealthReporter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	h.Probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

// Check answers a health request directly, without a network round trip.
func (h *HealthReporter) Check(ctx context.Context, service string) (*healthpb.HealthCheckResponse, error) {
	return h.server.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
}
