package pkg

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/perflab/ui_perf_core/internal/src"
	"github.com/perflab/ui_perf_core/types"
	"go.uber.org/zap"
)

// NewDebouncer creates a debouncer that fires a callback once triggers have
// been quiet for delay.
func NewDebouncer(delay time.Duration) IDebouncer {
	return src.NewDebouncer(delay, nil)
}

// NewDebouncerWithLogger is NewDebouncer with misuse warnings narrated
// through logger.
func NewDebouncerWithLogger(delay time.Duration, logger *zap.Logger) IDebouncer {
	return src.NewDebouncer(delay, logger)
}

// NewMockClient creates a mock fetch client over a concurrent in-memory
// store. latency is the simulated network delay per miss; generate produces
// the "fetched" value for a key. ctx bounds every simulated wait.
func NewMockClient[T any](ctx context.Context, latency time.Duration, generate func(key string) T) IFetchClient[T] {
	return src.NewMockClient[T](ctx, src.NewConcurrentStore[T](), latency, generate, nil)
}

// NewMockClientWithLogger is NewMockClient with hit/miss narration through
// logger, the way the comparison screens display it.
func NewMockClientWithLogger[T any](ctx context.Context, latency time.Duration, generate func(key string) T, logger *zap.Logger) IFetchClient[T] {
	return src.NewMockClient[T](ctx, src.NewConcurrentStore[T](), latency, generate, logger)
}

// NewShardedMockClient creates a mock fetch client over a sharded store, for
// examples that hammer the cache from many goroutines.
func NewShardedMockClient[T any](ctx context.Context, latency time.Duration, generate func(key string) T) IFetchClient[T] {
	return src.NewMockClient[T](ctx, src.NewShardedStore[T](), latency, generate, nil)
}

// NewPayloadClient creates a mock client producing types.Payload values: an
// opaque body derived from the key, a fresh request ID and a fetch timestamp.
func NewPayloadClient(ctx context.Context, latency time.Duration) IFetchClient[types.Payload] {
	return NewMockClient[types.Payload](ctx, latency, GeneratePayload)
}

// GeneratePayload is the default value generator used by NewPayloadClient.
func GeneratePayload(key string) types.Payload {
	return types.Payload{
		Key:       key,
		RequestID: uuid.NewString(),
		Body:      "payload://" + key,
		FetchedAt: time.Now(),
	}
}

// NewBatchLoader coalesces Load calls arriving within window (or until
// maxKeys accumulate) into one BatchFetch against client.
func NewBatchLoader[T any](ctx context.Context, client IFetchClient[T], window time.Duration, maxKeys int) ILoader[T] {
	return src.NewBatchLoader[T](ctx, client, window, maxKeys)
}

// NewTaskPool starts a pool of workers background goroutines with a pending
// queue of queueSize tasks.
func NewTaskPool[T any](ctx context.Context, workers, queueSize int) ITaskPool[T] {
	return src.NewTaskPool[T](ctx, workers, queueSize)
}

// NewResourceRegistry creates an empty registry of disposable resources.
func NewResourceRegistry() IResourceRegistry {
	return src.NewResourceRegistry(nil)
}
