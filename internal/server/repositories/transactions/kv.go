package transactions

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/kvstore"
)

type KVRepository struct {
	t kvstore.Table[models.Transaction]
}

func NewKVRepository(t kvstore.Table[models.Transaction]) *KVRepository {
	return &KVRepository{t: t}
}

func (r *KVRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.t.Insert(ctx, tx.ID, *tx)
}

func (r *KVRepository) List(ctx context.Context, f Filter) ([]*models.Transaction, error) {
	all, err := r.t.Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := []*models.Transaction{}
	for i := range all {
		if f.Match(&all[i]) {
			out = append(out, &all[i])
		}
	}
	return out, nil
}
