package grpc

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/adopour/backend/internal/middleware"
)

// GRPC serves the health and reflection APIs used by orchestrator probes.
type GRPC struct {
	logger *zap.Logger
	host   string
	port   string
	server *grpc.Server
	health *health.Server
}

func NewGRPC(
	logger *zap.Logger,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	host string,
	port string,
) *GRPC {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			rateLimitMiddleware.Unary(),
		),
	)

	// Health API
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Reflection API
	reflection.Register(grpcServer)

	return &GRPC{
		logger: logger,
		host:   host,
		port:   port,
		server: grpcServer,
		health: healthServer,
	}
}

func (this *GRPC) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%s", this.host, this.port))
	if err != nil {
		return err
	}
	return this.Serve(listener)
}

// Serve starts serving on an existing listener in the background.
func (this *GRPC) Serve(listener net.Listener) error {
	go func() {
		this.logger.Info("GRPC server started", zap.String("addr", listener.Addr().String()))
		err := this.server.Serve(listener)
		if err != nil {
			this.logger.Error("GRPC server stopped", zap.Error(err))
		}
	}()

	return nil
}

func (this *GRPC) Stop() error {
	this.health.Shutdown()
	this.server.GracefulStop()
	this.logger.Info("GRPC server stopped gracefully")
	return nil
}
