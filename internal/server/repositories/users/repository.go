package users

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

// Repository stores users keyed by principal. Create returns
// common.ErrorConflict for an existing principal; Get returns
// common.ErrorNotFound for an unknown one.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id models.Principal) (*models.User, error)
}
