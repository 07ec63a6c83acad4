package services

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/idgen"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/transactions"
)

// TransactionLedger is the append-only log of sales and transfers.
type TransactionLedger struct {
	repos repomanager.RepositoryManager
	clock clock.Clock
	ids   idgen.Generator
}

func NewTransactionLedger(m repomanager.RepositoryManager, clk clock.Clock, ids idgen.Generator) *TransactionLedger {
	return &TransactionLedger{repos: m, clock: clk, ids: ids}
}

type RecordInput struct {
	Mode          models.TxMode
	Pay           uint64
	TicketID      string
	SenderID      models.NullPrincipal
	ParticipantID models.Principal
	OrganizerID   models.Principal
}

// Record appends a transaction through r, which is normally the caller's
// atomic unit. Inputs are trusted; validation is the caller's job.
func (l *TransactionLedger) Record(ctx context.Context, r repomanager.Repositories, in RecordInput) (*models.Transaction, error) {
	now := l.clock.Now()
	tx := &models.Transaction{
		ID:            l.ids.NewID(),
		Mode:          in.Mode,
		Pay:           in.Pay,
		TicketID:      in.TicketID,
		SenderID:      in.SenderID,
		ParticipantID: in.ParticipantID,
		OrganizerID:   in.OrganizerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.Transactions.Create(ctx, tx); err != nil {
		return nil, storageErr("record transaction", err)
	}
	return tx, nil
}

// ListForUser returns what an organizer sold, or what a participant received
// or sent away.
func (l *TransactionLedger) ListForUser(ctx context.Context, caller models.Principal, role models.Role) ([]*models.Transaction, error) {
	f := transactions.Filter{PartyID: caller}
	if role == models.RoleOrganizer {
		f = transactions.Filter{OrganizerID: caller}
	}

	list, err := l.repos.Repositories().Transactions.List(ctx, f)
	if err != nil {
		return nil, storageErr("list transactions", err)
	}
	return list, nil
}
