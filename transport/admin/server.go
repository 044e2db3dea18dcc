// Package admin exposes the gRPC health endpoint orchestrators probe.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	grpc3 "github.com/mama165/sdk-go/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Service is the name reported by the health server for the router itself.
const Service = "chat-router"

type Server struct {
	log    *slog.Logger
	addr   string
	health *health.Server
}

func NewServer(log *slog.Logger, host string, port int) *Server {
	h := health.NewServer()
	h.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Server{log: log, addr: fmt.Sprintf("%s:%d", host, port), health: h}
}

// SetServing flips the router status; the empty service mirrors it.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(Service, status)
	s.health.SetServingStatus("", status)
}

func (s *Server) Health() healthpb.HealthServer { return s.health }

func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc3.UnaryLoggingInterceptor(s.log)))
	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting admin gRPC server", "address", s.addr)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
		close(errCh)
	}()
	s.SetServing(true)

	select {
	case err := <-errCh:
		s.SetServing(false)
		return err
	case <-ctx.Done():
		s.health.Shutdown()
		srv.GracefulStop()
		return nil
	}
}
