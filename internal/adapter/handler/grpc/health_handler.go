package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the service name reported by the gRPC health service
const ServiceName = "shopwallet.Wallet"

// HealthCheck reports whether the service's dependencies are reachable
type HealthCheck func(ctx context.Context) error

// HealthHandler keeps the gRPC health status in line with the storage backend
type HealthHandler struct {
	server  *health.Server
	check   HealthCheck
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthHandler creates a health handler on top of a grpc health server
func NewHealthHandler(server *health.Server, check HealthCheck, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		server:  server,
		check:   check,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Refresh runs the check once and publishes the resulting status
func (h *HealthHandler) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.check(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

// Run refreshes the status every interval until ctx is done
func (h *HealthHandler) Run(ctx context.Context, interval time.Duration) {
	h.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}
