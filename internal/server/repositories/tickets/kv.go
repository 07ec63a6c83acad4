package tickets

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/kvstore"
)

type KVRepository struct {
	t kvstore.Table[models.Ticket]
}

func NewKVRepository(t kvstore.Table[models.Ticket]) *KVRepository {
	return &KVRepository{t: t}
}

func (r *KVRepository) CreateBatch(ctx context.Context, batch []*models.Ticket) error {
	for _, t := range batch {
		if err := r.t.Insert(ctx, t.ID, *t); err != nil {
			return err
		}
	}
	return nil
}

func (r *KVRepository) Get(ctx context.Context, id string) (*models.Ticket, error) {
	t, err := r.t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *KVRepository) Update(ctx context.Context, t *models.Ticket) error {
	cur, err := r.t.Get(ctx, t.ID)
	if err != nil {
		return err
	}
	cur.ParticipantID = t.ParticipantID
	cur.UpdatedAt = t.UpdatedAt
	return r.t.Put(ctx, t.ID, cur)
}

func (r *KVRepository) List(ctx context.Context, f Filter) ([]*models.Ticket, error) {
	all, err := r.t.Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := []*models.Ticket{}
	for i := range all {
		if f.Match(&all[i]) {
			out = append(out, &all[i])
		}
	}
	return out, nil
}
