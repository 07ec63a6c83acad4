// Package repomanager wires the per-entity repositories to a storage backend
// and runs groups of writes as one atomic unit.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/events"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/tickets"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/users"
)

// Repositories is one consistent set of repositories.
type Repositories struct {
	Users        users.Repository
	Events       events.Repository
	Tickets      tickets.Repository
	Transactions transactions.Repository
}

// UnitFunc is the body of an atomic unit. It must do all its reads and writes
// through r.
type UnitFunc func(ctx context.Context, r Repositories) error

type RepositoryManager interface {
	// Repositories returns repositories for standalone reads and single writes.
	Repositories() Repositories
	// Atomic runs fn so that either all of its writes persist or none do.
	// Units do not interleave; a unit that loses a race with another writer
	// fails with common.ErrorConflict.
	Atomic(ctx context.Context, fn UnitFunc) error
	// RunMigrations prepares the backend schema.
	RunMigrations(ctx context.Context) error
	Close() error
}
