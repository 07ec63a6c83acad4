// Package rest serves the ledger facade as a JSON HTTP API.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// NewRouter builds the gin engine. Listing events and their tickets is
// public; everything else needs a bearer token.
func NewRouter(f *services.Facade, v *auth.Verifier, l logging.Logger) *gin.Engine {
	h := &handler{ledger: f, verifier: v, logger: l}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(l))
	router.Use(timeout(requestTimeout))

	router.GET("/health", h.health)

	v1 := router.Group("/v1")
	{
		v1.GET("/events", h.listEvents)
		v1.GET("/events/:id/tickets", h.listEventTickets)
	}

	authed := v1.Group("", h.bearerAuth)
	{
		authed.POST("/users", h.register)
		authed.GET("/me", h.whoAmI)
		authed.GET("/me/tickets", h.myTickets)
		authed.GET("/me/transactions", h.myTransactions)
		authed.POST("/events", h.createEvent)
		authed.POST("/events/:id/tickets", h.issueTickets)
		authed.POST("/tickets/:id/buy", h.buyTicket)
		authed.POST("/tickets/:id/transfer", h.transferTicket)
	}

	return router
}

type HTTPServer struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, f *services.Facade, v *auth.Verifier) *HTTPServer {
	l = l.With("module", "http_server")
	return &HTTPServer{address: a, handler: NewRouter(f, v, l), logger: l}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 3 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
