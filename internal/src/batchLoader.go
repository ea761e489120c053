package src

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	defaultLoaderWindow  = 10 * time.Millisecond
	defaultLoaderMaxKeys = 64
)

// loaderBatch collects the keys of one coalescing window. It is flushed
// exactly once, after which done is closed and every waiter reads its value
// from results.
type loaderBatch[T any] struct {
	keys    []string
	seen    map[string]struct{}
	results map[string]T
	err     error
	done    chan struct{}
	flushed bool
}

func newLoaderBatch[T any]() *loaderBatch[T] {
	batch := &loaderBatch[T]{}
	batch.seen = make(map[string]struct{})
	batch.done = make(chan struct{})
	return batch
}

// BatchLoader coalesces individual Load calls arriving within a wait window
// into a single BatchFetch against the wrapped fetcher. The first Load opens
// a window; keys accumulate until the window elapses or the max-keys cap is
// reached, then one batched request resolves every waiter at once.
type BatchLoader[T any] struct {
	sync.Mutex
	ctx     context.Context
	fetcher IBatchFetcher[T]
	window  time.Duration
	maxKeys int
	pending *loaderBatch[T]
}

// NewBatchLoader creates a loader over fetcher. Non-positive window or
// maxKeys values are normalized to small defaults.
func NewBatchLoader[T any](ctx context.Context, fetcher IBatchFetcher[T], window time.Duration, maxKeys int) *BatchLoader[T] {
	loader := &BatchLoader[T]{}
	loader.ctx = ctx
	loader.fetcher = fetcher
	loader.window = window
	loader.maxKeys = maxKeys

	if window <= 0 {
		loader.window = defaultLoaderWindow
	}
	if maxKeys <= 0 {
		loader.maxKeys = defaultLoaderMaxKeys
	}

	return loader
}

// Load returns the value for key, sharing one batched fetch with every other
// Load call in the same window. Blocks until the window is flushed or ctx is
// cancelled.
func (loader *BatchLoader[T]) Load(ctx context.Context, key string) (T, error) {
	if key == "" {
		return *new(T), errors.New("BatchLoader.Load ERROR: key must not be empty")
	}

	loader.Lock()
	batch := loader.pending
	if batch == nil {
		batch = newLoaderBatch[T]()
		loader.pending = batch
		time.AfterFunc(loader.window, func() { loader.flush(batch) })
	}

	if _, ok := batch.seen[key]; !ok {
		batch.seen[key] = struct{}{}
		batch.keys = append(batch.keys, key)
	}
	full := len(batch.keys) >= loader.maxKeys
	loader.Unlock()

	if full {
		loader.flush(batch)
	}

	select {
	case <-batch.done:
	case <-ctx.Done():
		return *new(T), ctx.Err()
	}

	if batch.err != nil {
		return *new(T), batch.err
	}

	value, ok := batch.results[key]
	if !ok {
		return *new(T), fmt.Errorf("BatchLoader.Load ERROR: no value for key %q in batch result", key)
	}

	return value, nil
}

func (loader *BatchLoader[T]) flush(batch *loaderBatch[T]) {
	loader.Lock()
	if batch.flushed {
		loader.Unlock()
		return
	}
	batch.flushed = true
	if loader.pending == batch {
		loader.pending = nil
	}
	keys := batch.keys
	loader.Unlock()

	batch.results, batch.err = loader.fetcher.BatchFetch(loader.ctx, keys)
	close(batch.done)
}
