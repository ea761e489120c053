package src

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/perflab/ui_perf_core/types"
	"go.uber.org/zap"
)

// MockClient emulates a latency-bearing remote fetch behind a read-through
// in-memory store. A hit returns the cached value immediately; a miss waits
// the simulated latency, generates a value for the key and stores it.
// BatchFetch amortizes the latency over every uncached key in one simulated
// request. The hit and request counters are what an example UI displays to
// compare the two paths.
//
// Concurrent misses on the same key are not de-duplicated: each one counts a
// request, waits and overwrites the store. That is a deliberate
// simplification of the mock, not something callers should rely on.
type MockClient[T any] struct {
	sync.Mutex
	ctx       context.Context
	store     IStore[T]
	generate  func(key string) T
	latency   time.Duration
	requests  uint64
	cacheHits uint64
	logger    *zap.Logger
}

// NewMockClient creates a client over the given store. ctx bounds every
// simulated latency wait. A nil generator yields zero values; a negative
// latency is normalized to zero.
func NewMockClient[T any](ctx context.Context, store IStore[T], latency time.Duration, generate func(key string) T, logger *zap.Logger) *MockClient[T] {
	client := &MockClient[T]{}
	client.ctx = ctx
	client.store = store
	client.latency = latency
	client.generate = generate
	client.logger = logger

	if latency < 0 {
		client.latency = 0
	}
	if generate == nil {
		client.generate = func(string) T { return *new(T) }
	}
	if logger == nil {
		client.logger = zap.NewNop()
	}

	return client
}

// Fetch returns the value for key, from the store when cached and through a
// simulated network request otherwise.
func (client *MockClient[T]) Fetch(ctx context.Context, key string) (T, error) {
	if key == "" {
		client.logger.Warn("MockClient.Fetch called with empty key")
		return *new(T), errors.New("MockClient.Fetch ERROR: key must not be empty")
	}

	if value, ok := client.store.Get(key); ok {
		client.Lock()
		client.cacheHits++
		client.Unlock()

		client.logger.Debug("cache hit", zap.String("key", key))
		return value, nil
	}

	client.Lock()
	client.requests++
	client.Unlock()

	client.logger.Debug("network fetch", zap.String("key", key), zap.Duration("latency", client.latency))
	if err := client.simulateLatency(ctx); err != nil {
		return *new(T), err
	}

	value := client.generate(key)
	if err := client.store.Set(key, value); err != nil {
		return *new(T), err
	}

	return value, nil
}

// BatchFetch returns values for every distinct key in keys. Cached keys are
// served from the store and counted as hits; all uncached keys share exactly
// one simulated request and one latency wait.
func (client *MockClient[T]) BatchFetch(ctx context.Context, keys []string) (map[string]T, error) {
	distinct := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key == "" {
			client.logger.Warn("MockClient.BatchFetch called with empty key")
			return nil, errors.New("MockClient.BatchFetch ERROR: keys must not be empty")
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, key)
	}

	results := make(map[string]T, len(distinct))
	missing := make([]string, 0, len(distinct))
	for _, key := range distinct {
		if value, ok := client.store.Get(key); ok {
			results[key] = value
		} else {
			missing = append(missing, key)
		}
	}

	client.Lock()
	client.cacheHits += uint64(len(results))
	if len(missing) > 0 {
		client.requests++
	}
	client.Unlock()

	if len(missing) == 0 {
		client.logger.Debug("batch served from cache", zap.Int("keys", len(results)))
		return results, nil
	}

	client.logger.Debug("batch network fetch",
		zap.Int("hits", len(results)),
		zap.Int("misses", len(missing)),
		zap.Duration("latency", client.latency))
	if err := client.simulateLatency(ctx); err != nil {
		return nil, err
	}

	for _, key := range missing {
		value := client.generate(key)
		if err := client.store.Set(key, value); err != nil {
			return nil, err
		}
		results[key] = value
	}

	return results, nil
}

// Metrics returns a snapshot of the counters and the current store size.
func (client *MockClient[T]) Metrics() types.CacheMetrics {
	client.Lock()
	defer client.Unlock()

	return types.CacheMetrics{
		RequestCount:   client.requests,
		CacheHitCount:  client.cacheHits,
		CachedKeyCount: client.store.Len(),
	}
}

// EntryMetrics returns the per-entry statistics for key.
func (client *MockClient[T]) EntryMetrics(key string) types.EntryMetric[T] {
	metric := types.EntryMetric[T]{Key: key}

	fetchedAt, getCount, setCount, ok := client.store.GetEntryMetrics(key)
	if !ok {
		return metric
	}

	value, _ := client.store.Get(key)
	metric.Value = value
	metric.GetCount = getCount
	metric.SetCount = setCount
	metric.FetchedAt = fetchedAt
	metric.Exists = true

	return metric
}

// Reset empties the store and zeroes both counters.
func (client *MockClient[T]) Reset() {
	client.Lock()
	defer client.Unlock()

	client.store.Clear()
	client.requests = 0
	client.cacheHits = 0
}

func (client *MockClient[T]) simulateLatency(ctx context.Context) error {
	if client.latency == 0 {
		return nil
	}

	timer := time.NewTimer(client.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-client.ctx.Done():
		return client.ctx.Err()
	}
}
