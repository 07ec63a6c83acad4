// Package grpc serves the ledger facade as ticketledger.v1.LedgerService.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/ticketledger/internal/api"
	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/services"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address  string
	ledger   *services.Facade
	verifier *auth.Verifier
	logger   logging.Logger
}

var _ api.LedgerServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, f *services.Facade, v *auth.Verifier) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		ledger:   f,
		verifier: v,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterLedgerServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
