// Package dbx holds the database/sql plumbing shared by the Postgres
// repositories: the DBTX handle, a transaction runner and helpers that
// classify PostgreSQL errors.
package dbx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	CodeUniqueViolation      = "23505"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Serializable is the option set used for ledger write units.
var Serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// WithTx begins a transaction, runs fn with it and commits when fn returns
// nil. Any error or panic rolls the transaction back; panics are rethrown.
//
//	err := dbx.WithTx(ctx, db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "UPDATE tickets ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// SQLState returns the PostgreSQL error code carried by err, or "".
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return SQLState(err) == CodeUniqueViolation
}

// IsSerializationFailure reports whether err means the transaction lost a
// race with a concurrent one and was aborted by the server.
func IsSerializationFailure(err error) bool {
	switch SQLState(err) {
	case CodeSerializationFailure, CodeDeadlockDetected:
		return true
	}
	return false
}
