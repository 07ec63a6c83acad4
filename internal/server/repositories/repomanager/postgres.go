package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/dbx"
	"github.com/dmitrijs2005/ticketledger/internal/server/migrations"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/events"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/tickets"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager runs units as SERIALIZABLE transactions.
type PostgresRepositoryManager struct {
	db *sql.DB
}

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

// OpenPostgres connects with the pgx driver and checks the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return NewPostgresRepositoryManager(db), nil
}

func (m *PostgresRepositoryManager) bind(db dbx.DBTX) Repositories {
	return Repositories{
		Users:        users.NewPostgresRepository(db),
		Events:       events.NewPostgresRepository(db),
		Tickets:      tickets.NewPostgresRepository(db),
		Transactions: transactions.NewPostgresRepository(db),
	}
}

func (m *PostgresRepositoryManager) Repositories() Repositories {
	return m.bind(m.db)
}

func (m *PostgresRepositoryManager) Atomic(ctx context.Context, fn UnitFunc) error {
	err := dbx.WithTx(ctx, m.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.bind(tx))
	})
	if dbx.IsSerializationFailure(err) {
		return fmt.Errorf("%w: concurrent update: %v", common.ErrorConflict, err)
	}
	return err
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
