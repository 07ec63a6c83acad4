package client

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/api"
)

// Client is what the CLI needs from the ledger server.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, role string) (*api.User, error)
	WhoAmI(ctx context.Context) (*api.User, error)
	CreateEvent(ctx context.Context, in *api.CreateEventRequest) (*api.Event, error)
	ListEvents(ctx context.Context) ([]api.Event, error)
	IssueTickets(ctx context.Context, in *api.IssueTicketsRequest) ([]api.Ticket, error)
	ListEventTickets(ctx context.Context, eventID string) ([]api.Ticket, error)
	MyTickets(ctx context.Context) ([]api.Ticket, error)
	MyTransactions(ctx context.Context) ([]api.Transaction, error)
	BuyTicket(ctx context.Context, ticketID string, pay uint64) (*api.Transaction, error)
	TransferTicket(ctx context.Context, ticketID, to string) (*api.Transaction, error)
	Close() error
}
