package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/api"
	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods can be called without a token.
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodPing):             true,
	api.FullMethod(api.MethodListEvents):       true,
	api.FullMethod(api.MethodListEventTickets): true,
}

// accessTokenInterceptor verifies the caller token and puts the proven
// principal into the context. It does not check registration; services do.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, errorStatus(common.ErrorUnauthenticated, "missing token")
	}

	principal, err := s.verifier.Verify(accessToken)
	if err != nil {
		s.logger.Warn(ctx, "token rejected", "method", info.FullMethod, "error", err)
		return nil, toStatus(err)
	}

	return handler(auth.WithPrincipal(ctx, principal), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		st := status.Convert(err)
		s.logger.Info(ctx, "rpc failed", "method", info.FullMethod, "code", st.Code().String(), "duration", time.Since(start))
		return resp, err
	}
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "duration", time.Since(start))
	return resp, nil
}
