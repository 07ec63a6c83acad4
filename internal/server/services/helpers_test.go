package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/idgen"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/repomanager"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const (
	orgA  models.Principal = "org-a"
	orgB  models.Principal = "org-b"
	alice models.Principal = "alice"
	bob   models.Principal = "bob"
	carol models.Principal = "carol"
)

type recordingPublisher struct {
	mu  sync.Mutex
	txs []*models.Transaction
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, tx *models.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.txs = append(p.txs, tx)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []*models.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*models.Transaction(nil), p.txs...)
}

type fixture struct {
	repos   repomanager.RepositoryManager
	clock   *clock.Manual
	pub     *recordingPublisher
	users   *UserService
	events  *EventService
	tickets *TicketService
	ledger  *TransactionLedger
	facade  *Facade
}

func newFixture(t *testing.T, m repomanager.RepositoryManager, opts ...TicketServiceOption) *fixture {
	t.Helper()
	f := &fixture{repos: m, clock: clock.NewManual(t0), pub: &recordingPublisher{}}
	ids := idgen.NewSequence("id")
	log := logging.NewNopLogger()

	f.users = NewUserService(m, f.clock, log)
	f.events = NewEventService(m, f.clock, ids, log)
	f.ledger = NewTransactionLedger(m, f.clock, ids)
	opts = append([]TicketServiceOption{WithPublisher(f.pub)}, opts...)
	f.tickets = NewTicketService(m, f.ledger, f.clock, ids, log, opts...)
	f.facade = NewFacade(f.users, f.events, f.tickets, f.ledger)
	return f
}

func newMemoryFixture(t *testing.T, opts ...TicketServiceOption) *fixture {
	return newFixture(t, repomanager.NewMemoryRepositoryManager(), opts...)
}

func newRedisFixture(t *testing.T, opts ...TicketServiceOption) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	m := repomanager.NewRedisRepositoryManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	t.Cleanup(func() { _ = m.Close() })
	return newFixture(t, m, opts...)
}

// backends runs fn once per key-value storage backend.
func backends(t *testing.T, fn func(t *testing.T, f *fixture)) {
	t.Run("memory", func(t *testing.T) { fn(t, newMemoryFixture(t)) })
	t.Run("redis", func(t *testing.T) { fn(t, newRedisFixture(t)) })
}

func (f *fixture) register(t *testing.T, p models.Principal, role models.Role) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), p, string(p), role)
	require.NoError(t, err)
	return u
}

func (f *fixture) event(t *testing.T, organizer models.Principal) *models.Event {
	t.Helper()
	e, err := f.events.Create(context.Background(), organizer, "Concert", t0.Add(48*time.Hour), "Riga")
	require.NoError(t, err)
	return e
}

func (f *fixture) issue(t *testing.T, organizer models.Principal, eventID string, n uint32) []*models.Ticket {
	t.Helper()
	batch, err := f.tickets.IssueBatch(context.Background(), organizer, eventID, models.TicketVIP, 100, n)
	require.NoError(t, err)
	return batch
}

// seeded registers two organizers and three participants and gives orgA one
// event.
func (f *fixture) seeded(t *testing.T) *models.Event {
	t.Helper()
	f.register(t, orgA, models.RoleOrganizer)
	f.register(t, orgB, models.RoleOrganizer)
	f.register(t, alice, models.RoleParticipant)
	f.register(t, bob, models.RoleParticipant)
	f.register(t, carol, models.RoleParticipant)
	return f.event(t, orgA)
}

var errBoom = errors.New("boom")

type failingUsers struct{ err error }

func (f failingUsers) Create(context.Context, *models.User) error { return f.err }
func (f failingUsers) Get(context.Context, models.Principal) (*models.User, error) {
	return nil, f.err
}

// stubManager serves fixed repositories and runs units without isolation.
type stubManager struct{ r repomanager.Repositories }

func (m stubManager) Repositories() repomanager.Repositories { return m.r }
func (m stubManager) Atomic(ctx context.Context, fn repomanager.UnitFunc) error {
	return fn(ctx, m.r)
}
func (m stubManager) RunMigrations(context.Context) error { return nil }
func (m stubManager) Close() error                        { return nil }
