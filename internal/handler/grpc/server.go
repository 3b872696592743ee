// Package grpc serves the standard health service so orchestrators can probe the node.
package grpc

import (
	"context"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health entry tracking the chain connection
const ServiceName = "dracma.presale.v1.Orchestrator"

// Probe reports whether the chain backend answers
type Probe func(ctx context.Context) error

type Server struct {
	server *grpc.Server
	health *health.Server
	logger *zap.Logger
}

func NewServer(enableReflection bool, logger *zap.Logger) *Server {
	s := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))

	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	// Enable reflection for development
	if enableReflection {
		reflection.Register(s)
	}

	return &Server{server: s, health: h, logger: logger.With(zap.String("component", "grpc"))}
}

// SetServing flips both the overall and the orchestrator status
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Monitor runs probe on every tick and mirrors its result into the health status
func (s *Server) Monitor(ctx context.Context, probe Probe, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	serving := false
	for {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		err := probe(probeCtx)
		cancel()

		if ok := err == nil; ok != serving {
			serving = ok
			s.SetServing(ok)
			if ok {
				s.logger.Info("chain backend reachable")
			} else {
				s.logger.Warn("chain backend unreachable", zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// GracefulStop reports NOT_SERVING to watchers before draining connections
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
