package transactions

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

// Filter narrows List. PartyID matches either the receiving participant or
// the sender of a transfer.
type Filter struct {
	OrganizerID models.Principal
	PartyID     models.Principal
}

func (f Filter) Match(t *models.Transaction) bool {
	if f.OrganizerID != "" && t.OrganizerID != f.OrganizerID {
		return false
	}
	if f.PartyID != "" && !t.Involves(f.PartyID) {
		return false
	}
	return true
}

// Repository is an append-only transaction log.
type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context, f Filter) ([]*models.Transaction, error)
}
