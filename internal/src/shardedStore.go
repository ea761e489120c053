package src

import (
	"errors"
	"sync"
	"time"

	"github.com/perflab/ui_perf_core/internal/utils"
)

// ShardedStore spreads entries over up to 256 concurrent stores keyed by the
// top byte of the key's xxHash64. Shards are created on first write and
// removed once emptied, so an idle store costs almost nothing.
type ShardedStore[T any] struct {
	sync.RWMutex
	shards   map[uint8]IStore[T]
	isClosed bool
}

// NewShardedStore creates an empty sharded store.
func NewShardedStore[T any]() IStore[T] {
	store := &ShardedStore[T]{}
	store.shards = make(map[uint8]IStore[T])

	return store
}

func (store *ShardedStore[T]) Set(key string, value T) error {
	store.Lock()
	defer store.Unlock()

	if store.isClosed {
		return errors.New("ShardedStore.Set ERROR: cannot perform operation on closed store")
	}

	hash := utils.GetTopHash(key)
	if shard, ok := store.shards[hash]; ok {
		return shard.Set(key, value)
	}

	newShard := NewConcurrentStore[T]()
	if err := newShard.Set(key, value); err != nil {
		return err
	}
	store.shards[hash] = newShard

	return nil
}

func (store *ShardedStore[T]) Get(key string) (T, bool) {
	store.RLock()
	defer store.RUnlock()

	if store.isClosed {
		return *new(T), false
	}

	hash := utils.GetTopHash(key)
	if shard, ok := store.shards[hash]; ok {
		return shard.Get(key)
	}

	return *new(T), false
}

func (store *ShardedStore[T]) Delete(key string) {
	store.Lock()
	defer store.Unlock()

	if store.isClosed {
		return
	}

	hash := utils.GetTopHash(key)
	if shard, ok := store.shards[hash]; ok {
		shard.Delete(key)
		if shard.Len() == 0 {
			delete(store.shards, hash)
		}
	}
}

func (store *ShardedStore[T]) Clear() {
	store.Lock()
	defer store.Unlock()

	if store.isClosed {
		return
	}

	for hash, shard := range store.shards {
		shard.Clear()
		delete(store.shards, hash)
	}
}

func (store *ShardedStore[T]) Close() {
	store.Lock()
	defer store.Unlock()

	if store.isClosed {
		return
	}

	store.isClosed = true
	for hash, shard := range store.shards {
		shard.Close()
		delete(store.shards, hash)
	}
}

func (store *ShardedStore[T]) Len() int {
	store.RLock()
	defer store.RUnlock()

	if store.isClosed {
		return 0
	}

	var count int
	for _, shard := range store.shards {
		count += shard.Len()
	}

	return count
}

func (store *ShardedStore[T]) Range(callback func(key string, value T) bool) error {
	store.RLock()
	defer store.RUnlock()

	if store.isClosed {
		return errors.New("ShardedStore.Range ERROR: cannot perform operation on closed store")
	}

	stopped := false
	wrapped := func(key string, value T) bool {
		if !callback(key, value) {
			stopped = true
			return false
		}
		return true
	}

	for _, shard := range store.shards {
		if err := shard.Range(wrapped); err != nil {
			return err
		}
		if stopped {
			break
		}
	}

	return nil
}

func (store *ShardedStore[T]) GetEntryMetrics(key string) (time.Time, uint32, uint32, bool) {
	store.RLock()
	defer store.RUnlock()

	if store.isClosed {
		return time.Time{}, 0, 0, false
	}

	hash := utils.GetTopHash(key)
	if shard, ok := store.shards[hash]; ok {
		return shard.GetEntryMetrics(key)
	}

	return time.Time{}, 0, 0, false
}
