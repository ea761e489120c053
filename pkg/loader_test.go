package pkg

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBatchLoader_CoalescesConcurrentLoads(t *testing.T) {
	ctx := context.Background()
	client := NewMockClient[string](ctx, 10*time.Millisecond, func(key string) string { return "value-" + key })
	loader := NewBatchLoader[string](ctx, client, 50*time.Millisecond, 100)

	const callers = 10
	results := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(id int) {
			defer wg.Done()
			results[id], errs[id] = loader.Load(ctx, fmt.Sprintf("key-%d", id))
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		assert.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("value-key-%d", i), results[i])
	}

	metrics := client.Metrics()
	assert.Equal(t, uint64(1), metrics.RequestCount, "loads inside one window should share one simulated request")
	assert.Equal(t, callers, metrics.CachedKeyCount)
}

func TestBatchLoader_SameKeyLoadedOnce(t *testing.T) {
	ctx := context.Background()
	client := NewMockClient[string](ctx, 10*time.Millisecond, func(key string) string { return "value-" + key })
	loader := NewBatchLoader[string](ctx, client, 50*time.Millisecond, 100)

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			value, err := loader.Load(ctx, "shared")
			assert.NoError(t, err)
			assert.Equal(t, "value-shared", value)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(1), client.Metrics().RequestCount)
}

func TestBatchLoader_MaxKeysFlushesEarly(t *testing.T) {
	ctx := context.Background()
	client := NewMockClient[string](ctx, time.Millisecond, func(key string) string { return "value-" + key })
	loader := NewBatchLoader[string](ctx, client, time.Hour, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	start := time.Now()
	for i := 0; i < 2; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := loader.Load(ctx, fmt.Sprintf("key-%d", id))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Less(t, time.Since(start), time.Second, "a full window should flush without waiting for the timer")
	assert.Equal(t, uint64(1), client.Metrics().RequestCount)
}

func TestBatchLoader_SequentialWindows(t *testing.T) {
	ctx := context.Background()
	client := NewMockClient[string](ctx, time.Millisecond, func(key string) string { return "value-" + key })
	loader := NewBatchLoader[string](ctx, client, 20*time.Millisecond, 100)

	first, err := loader.Load(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, "value-a", first)

	second, err := loader.Load(ctx, "b")
	assert.NoError(t, err)
	assert.Equal(t, "value-b", second)

	assert.Equal(t, uint64(2), client.Metrics().RequestCount, "loads in separate windows are separate requests")
}

func TestBatchLoader_EmptyKeyFailsFast(t *testing.T) {
	ctx := context.Background()
	client := NewMockClient[string](ctx, time.Millisecond, func(key string) string { return key })
	loader := NewBatchLoader[string](ctx, client, 20*time.Millisecond, 100)

	_, err := loader.Load(ctx, "")
	assert.Error(t, err)
	assert.Equal(t, uint64(0), client.Metrics().RequestCount)
}

func TestBatchLoader_LoadAbortsOnContextCancel(t *testing.T) {
	ctx := context.Background()
	client := NewMockClient[string](ctx, time.Millisecond, func(key string) string { return key })
	loader := NewBatchLoader[string](ctx, client, time.Hour, 100)

	loadCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	_, err := loader.Load(loadCtx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBatchLoader_CachedKeysStayCheap(t *testing.T) {
	ctx := context.Background()
	client := NewMockClient[string](ctx, time.Millisecond, func(key string) string { return "value-" + key })
	loader := NewBatchLoader[string](ctx, client, 20*time.Millisecond, 100)

	_, err := loader.Load(ctx, "a")
	assert.NoError(t, err)
	before := client.Metrics()

	value, err := loader.Load(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, "value-a", value)

	after := client.Metrics()
	assert.Equal(t, before.RequestCount, after.RequestCount, "a fully cached window must not reach the network")
	assert.Equal(t, before.CacheHitCount+1, after.CacheHitCount)
}
