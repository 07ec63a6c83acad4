package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

// Facade is the operation set exposed to transports. The caller is the
// verified principal of the request; an empty caller is unauthenticated.
type Facade struct {
	users   *UserService
	events  *EventService
	tickets *TicketService
	ledger  *TransactionLedger
}

func NewFacade(u *UserService, e *EventService, t *TicketService, l *TransactionLedger) *Facade {
	return &Facade{users: u, events: e, tickets: t, ledger: l}
}

func (f *Facade) Register(ctx context.Context, caller models.Principal, name string, role models.Role) (*models.User, error) {
	return f.users.Register(ctx, caller, name, role)
}

func (f *Facade) WhoAmI(ctx context.Context, caller models.Principal) (*models.User, error) {
	return f.users.Get(ctx, caller)
}

func (f *Facade) CreateEvent(ctx context.Context, caller models.Principal, name string, date time.Time, location string) (*models.Event, error) {
	return f.events.Create(ctx, caller, name, date, location)
}

func (f *Facade) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return f.events.List(ctx)
}

func (f *Facade) IssueTickets(ctx context.Context, caller models.Principal, eventID string, role models.TicketRole, price uint64, quantity uint32) ([]*models.Ticket, error) {
	return f.tickets.IssueBatch(ctx, caller, eventID, role, price, quantity)
}

func (f *Facade) ListEventTickets(ctx context.Context, eventID string) ([]*models.Ticket, error) {
	return f.tickets.ListForEvent(ctx, eventID)
}

// MyTickets lists tickets the caller holds, or for an organizer the tickets
// they issued.
func (f *Facade) MyTickets(ctx context.Context, caller models.Principal) ([]*models.Ticket, error) {
	u, err := f.users.Get(ctx, caller)
	if err != nil {
		return nil, err
	}
	return f.tickets.ListForHolder(ctx, u)
}

func (f *Facade) MyTransactions(ctx context.Context, caller models.Principal) ([]*models.Transaction, error) {
	u, err := f.users.Get(ctx, caller)
	if err != nil {
		return nil, err
	}
	return f.ledger.ListForUser(ctx, u.ID, u.Role)
}

func (f *Facade) BuyTicket(ctx context.Context, caller models.Principal, ticketID string, pay uint64) (*models.Transaction, error) {
	return f.tickets.Buy(ctx, caller, ticketID, pay)
}

func (f *Facade) TransferTicket(ctx context.Context, caller models.Principal, ticketID string, to models.Principal) (*models.Transaction, error) {
	return f.tickets.Transfer(ctx, caller, ticketID, to)
}
