package kvstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/ticketledger/internal/common"
)

// Journal records how to undo writes made inside an atomic unit.
type Journal struct {
	undo []func()
}

func (j *Journal) record(f func()) {
	j.undo = append(j.undo, f)
}

// Rollback reverts every recorded write, newest first.
func (j *Journal) Rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// Len is the number of writes recorded so far.
func (j *Journal) Len() int { return len(j.undo) }

// MemoryTable is a Table held in process memory. Tables sharing one
// *sync.RWMutex form a store; a view returned by InUnit skips locking (the
// unit holds the writer lock) and journals its writes.
type MemoryTable[V any] struct {
	data    map[string]V
	mu      *sync.RWMutex
	journal *Journal
}

func NewMemoryTable[V any](mu *sync.RWMutex) *MemoryTable[V] {
	return &MemoryTable[V]{data: make(map[string]V), mu: mu}
}

// InUnit returns a view of t for use while the caller holds the store's
// writer lock. Writes through the view are recorded in j.
func (t *MemoryTable[V]) InUnit(j *Journal) *MemoryTable[V] {
	return &MemoryTable[V]{data: t.data, journal: j}
}

func (t *MemoryTable[V]) rlock() func() {
	if t.mu == nil {
		return func() {}
	}
	t.mu.RLock()
	return t.mu.RUnlock
}

func (t *MemoryTable[V]) lock() func() {
	if t.mu == nil {
		return func() {}
	}
	t.mu.Lock()
	return t.mu.Unlock
}

func (t *MemoryTable[V]) Get(_ context.Context, key string) (V, error) {
	defer t.rlock()()

	v, ok := t.data[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("key %q: %w", key, common.ErrorNotFound)
	}
	return v, nil
}

func (t *MemoryTable[V]) Insert(_ context.Context, key string, v V) error {
	defer t.lock()()

	if _, ok := t.data[key]; ok {
		return fmt.Errorf("key %q: %w", key, common.ErrorConflict)
	}
	t.set(key, v)
	return nil
}

func (t *MemoryTable[V]) Put(_ context.Context, key string, v V) error {
	defer t.lock()()

	t.set(key, v)
	return nil
}

func (t *MemoryTable[V]) set(key string, v V) {
	if t.journal != nil {
		prev, existed := t.data[key]
		t.journal.record(func() {
			if existed {
				t.data[key] = prev
			} else {
				delete(t.data, key)
			}
		})
	}
	t.data[key] = v
}

func (t *MemoryTable[V]) Scan(_ context.Context) ([]V, error) {
	defer t.rlock()()

	keys := make([]string, 0, len(t.data))
	for k := range t.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.data[k])
	}
	return out, nil
}
