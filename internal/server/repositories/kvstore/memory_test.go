package kvstore

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string
	N    int
}

func TestMemoryTable_CRUD(t *testing.T) {
	ctx := context.Background()
	var tbl Table[item] = NewMemoryTable[item](&sync.RWMutex{})

	_, err := tbl.Get(ctx, "a")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, tbl.Insert(ctx, "b", item{Name: "b"}))
	require.NoError(t, tbl.Insert(ctx, "a", item{Name: "a"}))
	require.ErrorIs(t, tbl.Insert(ctx, "a", item{Name: "dup"}), common.ErrorConflict)

	require.NoError(t, tbl.Put(ctx, "a", item{Name: "a", N: 2}))
	got, err := tbl.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.N)

	all, err := tbl.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
}

func TestMemoryTable_JournalRollback(t *testing.T) {
	ctx := context.Background()
	mu := &sync.RWMutex{}
	tbl := NewMemoryTable[item](mu)
	require.NoError(t, tbl.Insert(ctx, "keep", item{N: 1}))

	j := &Journal{}
	mu.Lock()
	view := tbl.InUnit(j)
	require.NoError(t, view.Put(ctx, "keep", item{N: 99}))
	require.NoError(t, view.Insert(ctx, "new", item{N: 2}))
	assert.Equal(t, 2, j.Len())
	j.Rollback()
	mu.Unlock()

	got, err := tbl.Get(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, 1, got.N)

	_, err = tbl.Get(ctx, "new")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 0, j.Len())
}

func TestMemoryTable_ConcurrentInsertsOneWins(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable[item](&sync.RWMutex{})

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tbl.Insert(ctx, "k", item{}) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}
