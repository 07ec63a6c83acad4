package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/events"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/kvstore"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/tickets"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. A unit holds
// the store's writer lock for its whole duration and is undone from a
// journal on failure.
type MemoryRepositoryManager struct {
	mu           sync.RWMutex
	users        *kvstore.MemoryTable[models.User]
	events       *kvstore.MemoryTable[models.Event]
	tickets      *kvstore.MemoryTable[models.Ticket]
	transactions *kvstore.MemoryTable[models.Transaction]
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	m := &MemoryRepositoryManager{}
	m.users = kvstore.NewMemoryTable[models.User](&m.mu)
	m.events = kvstore.NewMemoryTable[models.Event](&m.mu)
	m.tickets = kvstore.NewMemoryTable[models.Ticket](&m.mu)
	m.transactions = kvstore.NewMemoryTable[models.Transaction](&m.mu)
	return m
}

func (m *MemoryRepositoryManager) Repositories() Repositories {
	return Repositories{
		Users:        users.NewKVRepository(m.users),
		Events:       events.NewKVRepository(m.events),
		Tickets:      tickets.NewKVRepository(m.tickets),
		Transactions: transactions.NewKVRepository(m.transactions),
	}
}

func (m *MemoryRepositoryManager) Atomic(ctx context.Context, fn UnitFunc) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j := &kvstore.Journal{}
	defer func() {
		if p := recover(); p != nil {
			j.Rollback()
			panic(p)
		}
		if err != nil {
			j.Rollback()
		}
	}()

	return fn(ctx, Repositories{
		Users:        users.NewKVRepository(m.users.InUnit(j)),
		Events:       events.NewKVRepository(m.events.InUnit(j)),
		Tickets:      tickets.NewKVRepository(m.tickets.InUnit(j)),
		Transactions: transactions.NewKVRepository(m.transactions.InUnit(j)),
	})
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
