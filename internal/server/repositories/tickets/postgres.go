// Package tickets persists tickets.
package tickets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

const selectColumns = `SELECT id, role, price::text, event_id, participant_id, organizer_id, created_at, updated_at FROM tickets`

func (r *PostgresRepository) CreateBatch(ctx context.Context, batch []*models.Ticket) error {
	query :=
		`INSERT INTO tickets (id, role, price, event_id, participant_id, organizer_id, created_at, updated_at)
		 VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)`

	for _, t := range batch {
		_, err := r.db.ExecContext(ctx, query,
			t.ID, string(t.Role), dbx.Uint64Arg(t.Price), t.EventID, t.ParticipantID,
			string(t.OrganizerID), t.CreatedAt, t.UpdatedAt)
		if err != nil {
			if dbx.IsUniqueViolation(err) {
				return fmt.Errorf("ticket %s: %w", t.ID, common.ErrorConflict)
			}
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func scanTicket(row interface{ Scan(...any) error }) (*models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(&t.ID, &t.Role, dbx.NumericUint64{V: &t.Price}, &t.EventID,
		&t.ParticipantID, &t.OrganizerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *models.Ticket) error {
	query :=
		`UPDATE tickets SET participant_id = $2, updated_at = $3
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, t.ID, t.ParticipantID, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Ticket, error) {
	var (
		conds []string
		args  []any
	)
	add := func(col string, v string) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.EventID != "" {
		add("event_id", f.EventID)
	}
	if f.ParticipantID != "" {
		add("participant_id", string(f.ParticipantID))
	}
	if f.OrganizerID != "" {
		add("organizer_id", string(f.OrganizerID))
	}

	query := selectColumns
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tickets: %w", err)
	}
	defer rows.Close()

	result := []*models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
