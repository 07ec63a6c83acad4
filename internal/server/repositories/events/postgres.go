// Package events persists events.
package events

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

const selectColumns = `SELECT id, name, date, location, organizer_id, created_at, updated_at FROM events`

func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) error {
	query :=
		`INSERT INTO events (id, name, date, location, organizer_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Date, e.Location, string(e.OrganizerID), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("event %s: %w", e.ID, common.ErrorConflict)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	if err := row.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Event, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
	}
	defer rows.Close()

	result := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
