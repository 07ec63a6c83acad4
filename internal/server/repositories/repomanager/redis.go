package repomanager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/events"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/kvstore"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/tickets"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/users"
	"github.com/redis/go-redis/v9"
)

// RedisRepositoryManager stores each entity type in one Redis hash.
//
// A unit runs under a process-wide mutex inside WATCH on all four hashes.
// Reads go straight to the server, writes are queued in a MULTI pipeline and
// sent on success, so a unit does not observe its own writes. If another
// process touched a watched hash, EXEC aborts and the unit fails with
// common.ErrorConflict. The watch is per hash, not per field: any write to
// one of the four hashes from another instance, a plain Register included,
// aborts a unit running at the same time even if it touches different keys.
// Callers see ErrorConflict and may retry.
type RedisRepositoryManager struct {
	client       *redis.Client
	mu           sync.Mutex
	users        *kvstore.RedisTable[models.User]
	events       *kvstore.RedisTable[models.Event]
	tickets      *kvstore.RedisTable[models.Ticket]
	transactions *kvstore.RedisTable[models.Transaction]
}

func NewRedisRepositoryManager(client *redis.Client, keyPrefix string) *RedisRepositoryManager {
	return &RedisRepositoryManager{
		client:       client,
		users:        kvstore.NewRedisTable[models.User](client, keyPrefix+"users"),
		events:       kvstore.NewRedisTable[models.Event](client, keyPrefix+"events"),
		tickets:      kvstore.NewRedisTable[models.Ticket](client, keyPrefix+"tickets"),
		transactions: kvstore.NewRedisTable[models.Transaction](client, keyPrefix+"transactions"),
	}
}

func (m *RedisRepositoryManager) Repositories() Repositories {
	return Repositories{
		Users:        users.NewKVRepository(m.users),
		Events:       events.NewKVRepository(m.events),
		Tickets:      tickets.NewKVRepository(m.tickets),
		Transactions: transactions.NewKVRepository(m.transactions),
	}
}

func (m *RedisRepositoryManager) Atomic(ctx context.Context, fn UnitFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.client.Watch(ctx, func(tx *redis.Tx) error {
		pipe := tx.TxPipeline()
		u := &kvstore.RedisUnit{}

		r := Repositories{
			Users:        users.NewKVRepository(m.users.InUnit(tx, pipe, u)),
			Events:       events.NewKVRepository(m.events.InUnit(tx, pipe, u)),
			Tickets:      tickets.NewKVRepository(m.tickets.InUnit(tx, pipe, u)),
			Transactions: transactions.NewKVRepository(m.transactions.InUnit(tx, pipe, u)),
		}
		if err := fn(ctx, r); err != nil {
			pipe.Discard()
			return err
		}

		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		return u.Check()
	}, m.users.Hash(), m.events.Hash(), m.tickets.Hash(), m.transactions.Hash())

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: concurrent update", common.ErrorConflict)
	}
	return err
}

// RunMigrations only checks connectivity; hashes need no schema.
func (m *RedisRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (m *RedisRepositoryManager) Close() error {
	return m.client.Close()
}
