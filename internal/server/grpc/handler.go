package grpc

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/api"
	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

// caller returns the principal the interceptor verified, or "" for public
// methods.
func caller(ctx context.Context) models.Principal {
	p, _ := auth.PrincipalFromContext(ctx)
	return models.Principal(p)
}

func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	if common.KindOf(err) == common.ErrorInternal {
		s.logger.Error(ctx, op+" failed", "error", err)
	}
	return toStatus(err)
}

func (s *GRPCServer) Ping(context.Context, *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.UserResponse, error) {
	u, err := s.ledger.Register(ctx, caller(ctx), req.Name, models.Role(req.Role))
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}
	return &api.UserResponse{User: api.FromUser(u)}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *api.WhoAmIRequest) (*api.UserResponse, error) {
	u, err := s.ledger.WhoAmI(ctx, caller(ctx))
	if err != nil {
		return nil, s.fail(ctx, "whoami", err)
	}
	return &api.UserResponse{User: api.FromUser(u)}, nil
}

func (s *GRPCServer) CreateEvent(ctx context.Context, req *api.CreateEventRequest) (*api.EventResponse, error) {
	e, err := s.ledger.CreateEvent(ctx, caller(ctx), req.Name, req.Date, req.Location)
	if err != nil {
		return nil, s.fail(ctx, "create event", err)
	}
	return &api.EventResponse{Event: api.FromEvent(e)}, nil
}

func (s *GRPCServer) ListEvents(ctx context.Context, _ *api.ListEventsRequest) (*api.EventsResponse, error) {
	list, err := s.ledger.ListEvents(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list events", err)
	}
	return &api.EventsResponse{Events: api.FromEvents(list)}, nil
}

func (s *GRPCServer) IssueTickets(ctx context.Context, req *api.IssueTicketsRequest) (*api.TicketsResponse, error) {
	list, err := s.ledger.IssueTickets(ctx, caller(ctx), req.EventID, models.TicketRole(req.Role), req.Price, req.Quantity)
	if err != nil {
		return nil, s.fail(ctx, "issue tickets", err)
	}
	return &api.TicketsResponse{Tickets: api.FromTickets(list)}, nil
}

func (s *GRPCServer) ListEventTickets(ctx context.Context, req *api.ListEventTicketsRequest) (*api.TicketsResponse, error) {
	list, err := s.ledger.ListEventTickets(ctx, req.EventID)
	if err != nil {
		return nil, s.fail(ctx, "list event tickets", err)
	}
	return &api.TicketsResponse{Tickets: api.FromTickets(list)}, nil
}

func (s *GRPCServer) MyTickets(ctx context.Context, _ *api.MyTicketsRequest) (*api.TicketsResponse, error) {
	list, err := s.ledger.MyTickets(ctx, caller(ctx))
	if err != nil {
		return nil, s.fail(ctx, "my tickets", err)
	}
	return &api.TicketsResponse{Tickets: api.FromTickets(list)}, nil
}

func (s *GRPCServer) MyTransactions(ctx context.Context, _ *api.MyTransactionsRequest) (*api.TransactionsResponse, error) {
	list, err := s.ledger.MyTransactions(ctx, caller(ctx))
	if err != nil {
		return nil, s.fail(ctx, "my transactions", err)
	}
	return &api.TransactionsResponse{Transactions: api.FromTransactions(list)}, nil
}

func (s *GRPCServer) BuyTicket(ctx context.Context, req *api.BuyTicketRequest) (*api.TransactionResponse, error) {
	tx, err := s.ledger.BuyTicket(ctx, caller(ctx), req.TicketID, req.Pay)
	if err != nil {
		return nil, s.fail(ctx, "buy ticket", err)
	}
	return &api.TransactionResponse{Transaction: api.FromTransaction(tx)}, nil
}

func (s *GRPCServer) TransferTicket(ctx context.Context, req *api.TransferTicketRequest) (*api.TransactionResponse, error) {
	tx, err := s.ledger.TransferTicket(ctx, caller(ctx), req.TicketID, models.Principal(req.To))
	if err != nil {
		return nil, s.fail(ctx, "transfer ticket", err)
	}
	return &api.TransactionResponse{Transaction: api.FromTransaction(tx)}, nil
}
