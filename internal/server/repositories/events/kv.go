package events

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/kvstore"
)

type KVRepository struct {
	t kvstore.Table[models.Event]
}

func NewKVRepository(t kvstore.Table[models.Event]) *KVRepository {
	return &KVRepository{t: t}
}

func (r *KVRepository) Create(ctx context.Context, e *models.Event) error {
	return r.t.Insert(ctx, e.ID, *e)
}

func (r *KVRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	e, err := r.t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *KVRepository) List(ctx context.Context) ([]*models.Event, error) {
	all, err := r.t.Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Event, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}
