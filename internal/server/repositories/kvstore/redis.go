package kvstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/ticketledger/internal/codec"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/redis/go-redis/v9"
)

// HashReader is the read side of a Redis connection. *redis.Client and
// *redis.Tx satisfy it.
type HashReader interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HExists(ctx context.Context, key, field string) *redis.BoolCmd
}

// HashWriter is the write side. *redis.Client and redis.Pipeliner satisfy it.
type HashWriter interface {
	HSetNX(ctx context.Context, key, field string, value any) *redis.BoolCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
}

// RedisUnit collects the inserts queued in a MULTI pipeline so their outcome
// can be checked after EXEC. pending holds the hash/field pairs already
// queued, so a second insert of the same key fails before anything is sent.
type RedisUnit struct {
	inserts []*redis.BoolCmd
	pending map[string]struct{}
}

func (u *RedisUnit) reserve(hash, key string) bool {
	id := hash + "\x00" + key
	if _, ok := u.pending[id]; ok {
		return false
	}
	if u.pending == nil {
		u.pending = make(map[string]struct{})
	}
	u.pending[id] = struct{}{}
	return true
}

// Check reports common.ErrorConflict if any queued insert found its key taken.
func (u *RedisUnit) Check() error {
	for _, cmd := range u.inserts {
		ok, err := cmd.Result()
		if err != nil {
			return fmt.Errorf("redis error: %w", err)
		}
		if !ok {
			return fmt.Errorf("insert raced: %w", common.ErrorConflict)
		}
	}
	return nil
}

// RedisTable stores one entity type as a single Redis hash; fields are keys
// and values are CBOR-encoded records.
type RedisTable[V any] struct {
	r    HashReader
	w    HashWriter
	hash string
	unit *RedisUnit
}

func NewRedisTable[V any](client *redis.Client, hash string) *RedisTable[V] {
	return &RedisTable[V]{r: client, w: client, hash: hash}
}

// InUnit returns a view that reads through r and queues writes on w.
func (t *RedisTable[V]) InUnit(r HashReader, w HashWriter, u *RedisUnit) *RedisTable[V] {
	return &RedisTable[V]{r: r, w: w, hash: t.hash, unit: u}
}

// Hash is the Redis key holding the table.
func (t *RedisTable[V]) Hash() string { return t.hash }

func (t *RedisTable[V]) Get(ctx context.Context, key string) (V, error) {
	var v V

	raw, err := t.r.HGet(ctx, t.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, fmt.Errorf("key %q: %w", key, common.ErrorNotFound)
	}
	if err != nil {
		return v, fmt.Errorf("redis error: %w", err)
	}
	if err := codec.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s/%s: %w", t.hash, key, err)
	}
	return v, nil
}

func (t *RedisTable[V]) Insert(ctx context.Context, key string, v V) error {
	data, err := codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", t.hash, key, err)
	}

	if t.unit == nil {
		ok, err := t.w.HSetNX(ctx, t.hash, key, data).Result()
		if err != nil {
			return fmt.Errorf("redis error: %w", err)
		}
		if !ok {
			return fmt.Errorf("key %q: %w", key, common.ErrorConflict)
		}
		return nil
	}

	exists, err := t.r.HExists(ctx, t.hash, key).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if exists || !t.unit.reserve(t.hash, key) {
		return fmt.Errorf("key %q: %w", key, common.ErrorConflict)
	}
	t.unit.inserts = append(t.unit.inserts, t.w.HSetNX(ctx, t.hash, key, data))
	return nil
}

func (t *RedisTable[V]) Put(ctx context.Context, key string, v V) error {
	data, err := codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", t.hash, key, err)
	}
	if err := t.w.HSet(ctx, t.hash, key, data).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (t *RedisTable[V]) Scan(ctx context.Context) ([]V, error) {
	all, err := t.r.HGetAll(ctx, t.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]V, 0, len(keys))
	for _, k := range keys {
		var v V
		if err := codec.Unmarshal([]byte(all[k]), &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", t.hash, k, err)
		}
		out = append(out, v)
	}
	return out, nil
}
