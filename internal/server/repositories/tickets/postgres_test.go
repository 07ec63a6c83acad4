package tickets

import (
	"context"
	"database/sql"
	"database/sql/driver"
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
	cols = []string{"id", "role", "price", "event_id", "participant_id", "organizer_id", "created_at", "updated_at"}
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreateBatch(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	batch := []*models.Ticket{
		{ID: "t-1", Role: models.TicketVIP, Price: 18446744073709551615, EventID: "e", OrganizerID: "o", CreatedAt: ts, UpdatedAt: ts},
		{ID: "t-2", Role: models.TicketVIP, Price: 18446744073709551615, EventID: "e", OrganizerID: "o", CreatedAt: ts, UpdatedAt: ts},
	}
	for _, tk := range batch {
		mock.ExpectExec(`(?s)INSERT\s+INTO\s+tickets.*\$3::numeric`).
			WithArgs(tk.ID, "VIP", "18446744073709551615", "e", nil, "o", ts, ts).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, repo.CreateBatch(context.Background(), batch))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_StopsOnError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+tickets`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+tickets`).WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.CreateBatch(context.Background(), []*models.Ticket{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	require.ErrorIs(t, err, common.ErrorConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`price::text.*FROM\s+tickets\s+WHERE\s+id\s*=\s*\$1`).WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("t-1", "Regular", "100", "e", "p", "o", ts, ts))

	got, err := repo.Get(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.Price)
	assert.Equal(t, models.TicketRegular, got.Role)
	assert.True(t, got.ParticipantID.Is("p"))

	mock.ExpectQuery(`FROM\s+tickets\s+WHERE`).WithArgs("x").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "x")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_Unsold(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+tickets`).WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("t-1", "VVIP", "5", "e", nil, "o", ts, ts))

	got, err := repo.Get(context.Background(), "t-1")
	require.NoError(t, err)
	assert.False(t, got.Sold())
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	later := ts.Add(time.Hour)

	mock.ExpectExec(`(?s)UPDATE\s+tickets\s+SET\s+participant_id\s*=\s*\$2,\s*updated_at\s*=\s*\$3`).
		WithArgs("t-1", "p", later).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), &models.Ticket{ID: "t-1", ParticipantID: models.SomePrincipal("p"), UpdatedAt: later}))

	mock.ExpectExec(`UPDATE\s+tickets`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Update(context.Background(), &models.Ticket{ID: "x"}), common.ErrorNotFound)

	mock.ExpectExec(`UPDATE\s+tickets`).WillReturnError(errors.New("db down"))
	require.ErrorContains(t, repo.Update(context.Background(), &models.Ticket{ID: "x"}), "db error")
}

func TestList_Filters(t *testing.T) {
	tests := []struct {
		name  string
		f     Filter
		query string
		args  []any
	}{
		{"all", Filter{}, `FROM\s+tickets\s+ORDER\s+BY\s+id$`, nil},
		{"event", Filter{EventID: "e"}, `WHERE\s+event_id\s*=\s*\$1\s+ORDER\s+BY\s+id$`, []any{"e"}},
		{"participant", Filter{ParticipantID: "p"}, `WHERE\s+participant_id\s*=\s*\$1\s+ORDER`, []any{"p"}},
		{
			"event and organizer",
			Filter{EventID: "e", OrganizerID: "o"},
			`WHERE\s+event_id\s*=\s*\$1\s+AND\s+organizer_id\s*=\s*\$2\s+ORDER`,
			[]any{"e", "o"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)

			q := mock.ExpectQuery(tt.query)
			if tt.args != nil {
				args := make([]driver.Value, 0, len(tt.args))
				for _, a := range tt.args {
					args = append(args, a)
				}
				q = q.WithArgs(args...)
			}
			q.WillReturnRows(sqlmock.NewRows(cols).
				AddRow("a", "VIP", "1", "e", nil, "o", ts, ts).
				AddRow("b", "VIP", "1", "e", "p", "o", ts, ts))

			got, err := repo.List(context.Background(), tt.f)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "a", got[0].ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestList_BadNumeric(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+tickets`).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("a", "VIP", "-3", "e", nil, "o", ts, ts))

	_, err := repo.List(context.Background(), Filter{})
	require.Error(t, err)
}
