package shared

import (
	"context"
	"sync"
)

// ForEveryWithBoundedGoroutines calls f for every value, running at most limit calls at a time.
// Values not yet started when ctx is cancelled are skipped.
func ForEveryWithBoundedGoroutines[T any](ctx context.Context, limit int, values []T, f func(i int, value T)) {
	if limit < 1 {
		limit = 1
	}
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, value := range values {
		if ctx.Err() != nil {
			break
		}
		select {
		case guard <- struct{}{}: // would block if guard channel is already filled
		case <-ctx.Done():
			wg.Wait()
			return
		}
		wg.Add(1)
		go func(i int, value T) {
			defer wg.Done()
			f(i, value)
			<-guard
		}(i, value)
	}
	wg.Wait()
}
