package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestAuthenticator resolves an authorization header into a principal.
type RequestAuthenticator interface {
	Authenticate(ctx context.Context, header string) (*auth.Principal, error)
}

const authorizationMetadataKey = "authorization"

func (s *GRPCServer) authorize(ctx context.Context, method string) (context.Context, error) {
	if _, ok := s.public[method]; ok {
		return ctx, nil
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(authorizationMetadataKey); len(values) > 0 {
			header = values[0]
		}
	}

	p, err := s.guard.Authenticate(ctx, header)
	if err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		s.logger.Error(ctx, "authenticate", "method", method, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	// refresh tokens do not authenticate calls
	if p == nil {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	return auth.WithPrincipal(ctx, p), nil
}

func (s *GRPCServer) authUnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx, err := s.authorize(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context { return w.ctx }

func (s *GRPCServer) authStreamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authorize(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})
}
