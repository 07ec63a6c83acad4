package users

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/kvstore"
)

// KVRepository stores users in a kvstore.Table keyed by principal.
type KVRepository struct {
	t kvstore.Table[models.User]
}

func NewKVRepository(t kvstore.Table[models.User]) *KVRepository {
	return &KVRepository{t: t}
}

func (r *KVRepository) Create(ctx context.Context, user *models.User) error {
	return r.t.Insert(ctx, string(user.ID), *user)
}

func (r *KVRepository) Get(ctx context.Context, id models.Principal) (*models.User, error) {
	u, err := r.t.Get(ctx, string(id))
	if err != nil {
		return nil, err
	}
	return &u, nil
}
