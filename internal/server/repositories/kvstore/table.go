// Package kvstore provides ordered key-value tables used by the
// non-relational storage backends.
package kvstore

import "context"

// Table is an ordered map from string keys to values of type V.
//
// Get returns common.ErrorNotFound for a missing key. Insert fails with
// common.ErrorConflict if the key already exists. Scan returns every value
// ordered by key.
type Table[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Insert(ctx context.Context, key string, v V) error
	Put(ctx context.Context, key string, v V) error
	Scan(ctx context.Context) ([]V, error)
}
