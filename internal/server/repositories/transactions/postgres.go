// Package transactions persists the append-only sale and transfer log.
package transactions

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query :=
		`INSERT INTO transactions (id, mode, pay, ticket_id, sender_id, participant_id, organizer_id, created_at, updated_at)
		 VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, string(tx.Mode), dbx.Uint64Arg(tx.Pay), tx.TicketID, tx.SenderID,
		string(tx.ParticipantID), string(tx.OrganizerID), tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("transaction %s: %w", tx.ID, common.ErrorConflict)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	if f.OrganizerID != "" {
		args = append(args, string(f.OrganizerID))
		conds = append(conds, fmt.Sprintf("organizer_id = $%d", len(args)))
	}
	if f.PartyID != "" {
		args = append(args, string(f.PartyID))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(participant_id = $%d OR sender_id = $%d)", n, n))
	}

	query := `SELECT id, mode, pay::text, ticket_id, sender_id, participant_id, organizer_id, created_at, updated_at FROM transactions`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	result := []*models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Mode, dbx.NumericUint64{V: &t.Pay}, &t.TicketID, &t.SenderID,
			&t.ParticipantID, &t.OrganizerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
