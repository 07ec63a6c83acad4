// Package users persists registered users.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/dbx"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		string(user.ID), user.Name, string(user.Role), user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", user.ID, common.ErrorConflict)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id models.Principal) (*models.User, error) {
	query :=
		`SELECT id, name, role, created_at, updated_at FROM users
		 WHERE id = $1`

	var u models.User
	err := r.db.QueryRowContext(ctx, query, string(id)).
		Scan(&u.ID, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &u, nil
}
