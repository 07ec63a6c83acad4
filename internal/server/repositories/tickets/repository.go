package tickets

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

// Filter narrows List. Empty fields match everything; set fields are ANDed.
type Filter struct {
	EventID       string
	ParticipantID models.Principal
	OrganizerID   models.Principal
}

func (f Filter) Match(t *models.Ticket) bool {
	if f.EventID != "" && t.EventID != f.EventID {
		return false
	}
	if f.ParticipantID != "" && !t.ParticipantID.Is(f.ParticipantID) {
		return false
	}
	if f.OrganizerID != "" && t.OrganizerID != f.OrganizerID {
		return false
	}
	return true
}

// Repository stores tickets. Update may only change the holder and the
// update time; it returns common.ErrorNotFound for an unknown ticket.
type Repository interface {
	CreateBatch(ctx context.Context, batch []*models.Ticket) error
	Get(ctx context.Context, id string) (*models.Ticket, error)
	Update(ctx context.Context, t *models.Ticket) error
	List(ctx context.Context, f Filter) ([]*models.Ticket, error)
}
