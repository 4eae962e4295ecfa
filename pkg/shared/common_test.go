package shared

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForEveryWithBoundedGoroutines(t *testing.T) {
	values := []string{"a.json", "b.json", "c.lottie", "d.json", "e.json"}
	results := make([]string, len(values))

	var running, peak int32
	ForEveryWithBoundedGoroutines(context.Background(), 2, values, func(i int, value string) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		results[i] = value
		atomic.AddInt32(&running, -1)
	})

	assert.Equal(t, values, results)
	assert.LessOrEqual(t, peak, int32(2))
}

func TestForEveryWithBoundedGoroutinesZeroLimit(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	ForEveryWithBoundedGoroutines(context.Background(), 0, []int{1, 2, 3}, func(_ int, value int) {
		mu.Lock()
		seen = append(seen, value)
		mu.Unlock()
	})
	assert.ElementsMatch(t, []int{1, 2, 3}, seen)
}

func TestForEveryWithBoundedGoroutinesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	ForEveryWithBoundedGoroutines(ctx, 1, []int{1, 2, 3}, func(int, int) {
		atomic.AddInt32(&calls, 1)
	})
	assert.Zero(t, atomic.LoadInt32(&calls))
}
