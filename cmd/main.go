package main

import (
	"context"
	"fmt"
	"time"

	"github.com/perflab/ui_perf_core/pkg"
	"go.uber.org/zap"
)

// Small narrated walkthrough of the two fetch paths: one simulated request
// per key versus one batched request, then a debounced "search box" firing a
// single fetch for a burst of keystrokes.
func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()
	latency := 100 * time.Millisecond

	client := pkg.NewMockClientWithLogger(ctx, latency, pkg.GeneratePayload, logger)
	keys := []string{"user/1", "user/2", "user/3", "user/4", "user/5"}

	start := time.Now()
	for _, key := range keys {
		if _, err := client.Fetch(ctx, key); err != nil {
			fmt.Println(err)
			return
		}
	}
	fmt.Printf("one request per key:  %v  %+v\n", time.Since(start), client.Metrics())

	client.Reset()

	start = time.Now()
	if _, err := client.BatchFetch(ctx, keys); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("one batched request:  %v  %+v\n", time.Since(start), client.Metrics())

	// A burst of keystrokes collapses into one fetch of the final query.
	registry := pkg.NewResourceRegistry()
	defer registry.Close()

	debouncer := pkg.NewDebouncerWithLogger(200*time.Millisecond, logger)
	if err := registry.Register("search-debouncer", debouncer.Dispose); err != nil {
		fmt.Println(err)
		return
	}

	done := make(chan struct{})
	for _, query := range []string{"g", "go", "gop", "goph", "gopher"} {
		query := query
		err := debouncer.Trigger(func() {
			if _, fetchErr := client.Fetch(ctx, "search/"+query); fetchErr != nil {
				fmt.Println(fetchErr)
			}
			close(done)
		})
		if err != nil {
			fmt.Println(err)
			return
		}
		time.Sleep(30 * time.Millisecond)
	}
	<-done

	fmt.Printf("after debounced burst: %+v\n", client.Metrics())
}
