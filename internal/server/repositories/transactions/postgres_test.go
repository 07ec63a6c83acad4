package transactions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ts   = time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	cols = []string{"id", "mode", "pay", "ticket_id", "sender_id", "participant_id", "organizer_id", "created_at", "updated_at"}
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate_Buy(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+transactions.*\$3::numeric`).
		WithArgs("x-1", "buy", "100", "t-1", nil, "p", "o", ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx := &models.Transaction{ID: "x-1", Mode: models.TxBuy, Pay: 100, TicketID: "t-1", ParticipantID: "p", OrganizerID: "o", CreatedAt: ts, UpdatedAt: ts}
	require.NoError(t, repo.Create(context.Background(), tx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Transfer(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+transactions`).
		WithArgs("x-2", "transfer", "0", "t-1", "p", "q", "o", ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx := &models.Transaction{ID: "x-2", Mode: models.TxTransfer, TicketID: "t-1", SenderID: models.SomePrincipal("p"), ParticipantID: "q", OrganizerID: "o", CreatedAt: ts, UpdatedAt: ts}
	require.NoError(t, repo.Create(context.Background(), tx))
}

func TestCreate_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+transactions`).WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, repo.Create(context.Background(), &models.Transaction{ID: "x"}), common.ErrorConflict)

	mock.ExpectExec(`INSERT\s+INTO\s+transactions`).WillReturnError(errors.New("db down"))
	require.ErrorContains(t, repo.Create(context.Background(), &models.Transaction{ID: "y"}), "db error")
}

func TestList_PartyMatchesParticipantOrSender(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+\(participant_id\s*=\s*\$1\s+OR\s+sender_id\s*=\s*\$1\)\s+ORDER\s+BY\s+id$`).
		WithArgs("p").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("x-1", "buy", "100", "t-1", nil, "p", "o", ts, ts).
			AddRow("x-2", "transfer", "0", "t-1", "p", "q", "o", ts, ts))

	got, err := repo.List(context.Background(), Filter{PartyID: "p"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(100), got[0].Pay)
	assert.False(t, got[0].SenderID.Valid)
	assert.True(t, got[1].SenderID.Is("p"))
	assert.Equal(t, models.TxTransfer, got[1].Mode)
}

func TestList_OrganizerAndParty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+organizer_id\s*=\s*\$1\s+AND\s+\(participant_id\s*=\s*\$2\s+OR\s+sender_id\s*=\s*\$2\)`).
		WithArgs("o", "p").
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background(), Filter{OrganizerID: "o", PartyID: "p"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+transactions`).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), Filter{})
	require.ErrorContains(t, err, "boom")
}
