package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txModes(list []*models.Transaction) []models.TxMode {
	out := make([]models.TxMode, 0, len(list))
	for _, tx := range list {
		out = append(out, tx.Mode)
	}
	return out
}

// Organizer O issues three tickets, P buys one, Q fails to buy it again,
// P transfers it to Q.
func TestFacade_OrganizerParticipantScenario(t *testing.T) {
	backends(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		api := f.facade
		const o, p, q models.Principal = "organizer-o", "participant-p", "participant-q"

		_, err := api.Register(ctx, o, "Olga", models.RoleOrganizer)
		require.NoError(t, err)
		_, err = api.Register(ctx, p, "Peter", models.RoleParticipant)
		require.NoError(t, err)
		_, err = api.Register(ctx, q, "Quinn", models.RoleParticipant)
		require.NoError(t, err)

		me, err := api.WhoAmI(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "Peter", me.Name)

		e, err := api.CreateEvent(ctx, o, "Festival", t0.Add(30*24*time.Hour), "Jurmala")
		require.NoError(t, err)
		events, err := api.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, e.ID, events[0].ID)

		issued, err := api.IssueTickets(ctx, o, e.ID, models.TicketRegular, 50, 3)
		require.NoError(t, err)
		require.Len(t, issued, 3)
		listed, err := api.ListEventTickets(ctx, e.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, ticketIDs(issued), ticketIDs(listed))

		target := issued[0].ID
		buy, err := api.BuyTicket(ctx, p, target, 50)
		require.NoError(t, err)
		assert.Equal(t, models.TxBuy, buy.Mode)

		_, err = api.BuyTicket(ctx, q, target, 50)
		require.ErrorIs(t, err, ErrTicketAlreadySold)
		assert.ErrorIs(t, err, common.ErrorInvalidState)

		transfer, err := api.TransferTicket(ctx, p, target, q)
		require.NoError(t, err)
		assert.True(t, transfer.SenderID.Is(p))

		pTickets, err := api.MyTickets(ctx, p)
		require.NoError(t, err)
		assert.Empty(t, pTickets)

		qTickets, err := api.MyTickets(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, []string{target}, ticketIDs(qTickets))

		oTickets, err := api.MyTickets(ctx, o)
		require.NoError(t, err)
		assert.Len(t, oTickets, 3)

		pTxs, err := api.MyTransactions(ctx, p)
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.TxMode{models.TxBuy, models.TxTransfer}, txModes(pTxs))

		qTxs, err := api.MyTransactions(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, []models.TxMode{models.TxTransfer}, txModes(qTxs))

		oTxs, err := api.MyTransactions(ctx, o)
		require.NoError(t, err)
		assert.Len(t, oTxs, 2)

		published := f.pub.published()
		require.Len(t, published, 2)
		assert.Equal(t, buy.ID, published[0].ID)
		assert.Equal(t, transfer.ID, published[1].ID)
	})
}

func TestFacade_UnregisteredCaller(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	_, err := f.facade.WhoAmI(ctx, alice)
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)
	_, err = f.facade.MyTickets(ctx, alice)
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)
	_, err = f.facade.MyTransactions(ctx, alice)
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)

	events, err := f.facade.ListEvents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	_, err = f.facade.ListEventTickets(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
