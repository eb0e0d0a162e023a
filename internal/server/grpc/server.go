// Package grpc serves the gRPC health service behind the same bearer token
// guard used by the HTTP API.
//
// The server registers only the health service. With DefaultPublicMethods
// the interceptors guard a single RPC, grpc.health.v1.Health/List, and no
// domain surface is exposed over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/mtmt/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// DefaultPublicMethods can be called without a token.
var DefaultPublicMethods = []string{
	healthpb.Health_Check_FullMethodName,
	healthpb.Health_Watch_FullMethodName,
}

type GRPCServer struct {
	address string
	guard   RequestAuthenticator
	public  map[string]struct{}
	health  *health.Server
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, guard RequestAuthenticator, publicMethods []string) *GRPCServer {
	public := make(map[string]struct{}, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = struct{}{}
	}

	return &GRPCServer{
		address: a,
		guard:   guard,
		public:  public,
		health:  health.NewServer(),
		logger:  l.With("module", "grpc_server"),
	}
}

// SetServing updates the health status of service. The empty name is the
// overall server status.
func (s *GRPCServer) SetServing(service string, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, st)
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.authUnaryInterceptor),
		grpc.ChainStreamInterceptor(s.authStreamInterceptor),
	)
	healthpb.RegisterHealthServer(srv, s.health)
	return srv
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
