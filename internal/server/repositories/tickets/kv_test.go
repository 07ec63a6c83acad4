package tickets

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ts []*models.Ticket) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestKVRepository(t *testing.T) {
	ctx := context.Background()
	var repo Repository = NewKVRepository(kvstore.NewMemoryTable[models.Ticket](&sync.RWMutex{}))

	require.NoError(t, repo.CreateBatch(ctx, []*models.Ticket{
		{ID: "t-3", EventID: "e-1", OrganizerID: "o-1", Price: 10},
		{ID: "t-1", EventID: "e-1", OrganizerID: "o-1", Price: 10},
		{ID: "t-2", EventID: "e-2", OrganizerID: "o-2", Price: 10},
	}))
	require.ErrorIs(t, repo.CreateBatch(ctx, []*models.Ticket{{ID: "t-1"}}), common.ErrorConflict)

	got, err := repo.List(ctx, Filter{EventID: "e-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t-1", "t-3"}, ids(got))

	got, err = repo.List(ctx, Filter{OrganizerID: "o-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t-2"}, ids(got))

	tk, err := repo.Get(ctx, "t-1")
	require.NoError(t, err)
	tk.ParticipantID = models.SomePrincipal("p-1")
	tk.Price = 999
	require.NoError(t, repo.Update(ctx, tk))

	tk, err = repo.Get(ctx, "t-1")
	require.NoError(t, err)
	assert.True(t, tk.ParticipantID.Is("p-1"))
	assert.Equal(t, uint64(10), tk.Price, "update must only touch holder and timestamp")

	got, err = repo.List(ctx, Filter{ParticipantID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t-1"}, ids(got))

	require.ErrorIs(t, repo.Update(ctx, &models.Ticket{ID: "nope"}), common.ErrorNotFound)
}

func TestFilter_Match(t *testing.T) {
	tk := &models.Ticket{EventID: "e", OrganizerID: "o", ParticipantID: models.SomePrincipal("p")}
	assert.True(t, Filter{}.Match(tk))
	assert.True(t, Filter{EventID: "e", ParticipantID: "p", OrganizerID: "o"}.Match(tk))
	assert.False(t, Filter{EventID: "x"}.Match(tk))
	assert.False(t, Filter{ParticipantID: "q"}.Match(tk))
	assert.False(t, Filter{ParticipantID: "p"}.Match(&models.Ticket{}))
}
