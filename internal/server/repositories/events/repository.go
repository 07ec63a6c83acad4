package events

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

// Repository stores events. List returns every event ordered by id.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
}
