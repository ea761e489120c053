package pkg

import (
	"context"

	"github.com/perflab/ui_perf_core/types"
)

// IDebouncer coalesces rapid triggers into at most one callback execution
// after a quiet period. Trigger replaces any pending callback; Dispose
// cancels it permanently.
type IDebouncer interface {
	Trigger(callback func()) error
	Dispose()
}

// IFetchClient emulates a remote fetch with a read-through cache, an explicit
// batching path and observable counters.
// Fetch returns the value for one key, serving it from cache when possible.
// BatchFetch resolves many keys with at most one simulated request.
// Metrics returns a counter snapshot without side effects.
// EntryMetrics returns per-entry access statistics.
// Reset empties the cache and zeroes the counters.
type IFetchClient[T any] interface {
	Fetch(ctx context.Context, key string) (T, error)
	BatchFetch(ctx context.Context, keys []string) (map[string]T, error)
	Metrics() types.CacheMetrics
	EntryMetrics(key string) types.EntryMetric[T]
	Reset()
}

// ILoader coalesces individual loads arriving within a wait window into one
// batched fetch.
type ILoader[T any] interface {
	Load(ctx context.Context, key string) (T, error)
}

// ITaskPool executes pure functions on background workers and delivers each
// result through a future. Submit never blocks the caller.
type ITaskPool[T any] interface {
	Submit(task func() (T, error)) (*types.Future[T], error)
	Close()
}

// IResourceRegistry owns named disposable resources and releases them
// deterministically, individually or all at once on Close.
type IResourceRegistry interface {
	Register(name string, dispose func()) error
	Release(name string)
	Len() int
	Close()
}
