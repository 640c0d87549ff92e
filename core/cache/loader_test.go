package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_CacheHitSkipsFactory(t *testing.T) {
	l := NewLoader(New[string](10, time.Minute))
	l.cache.Set("a", "cached")

	v, err := l.Load(context.Background(), "a", func(context.Context) (string, bool, error) {
		t.Fatal("factory must not run on a cache hit")
		return "", false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "cached", v)
}

func TestLoader_CoalescesConcurrentCalls(t *testing.T) {
	l := NewLoader(New[string](10, time.Minute))

	var calls atomic.Int32
	release := make(chan struct{})

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := l.Load(context.Background(), "key", func(context.Context) (string, bool, error) {
				calls.Add(1)
				<-release
				return "value", true, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let the goroutines pile up on the in-flight ticket before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "factory must run exactly once")
	for _, v := range results {
		assert.Equal(t, "value", v)
	}
}

func TestLoader_FailureNotCached(t *testing.T) {
	l := NewLoader(New[string](10, time.Minute))

	boom := errors.New("boom")
	var calls int
	factory := func(context.Context) (string, bool, error) {
		calls++
		if calls == 1 {
			return "", false, boom
		}
		return "ok", true, nil
	}

	_, err := l.Load(context.Background(), "key", factory)
	assert.ErrorIs(t, err, boom)

	// The ticket was dropped on failure; a later call retries the factory.
	v, err := l.Load(context.Background(), "key", factory)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestLoader_UncacheableResultNotRetained(t *testing.T) {
	l := NewLoader(New[string](10, time.Minute))

	var calls int
	factory := func(context.Context) (string, bool, error) {
		calls++
		return "partial", false, nil
	}

	v, err := l.Load(context.Background(), "key", factory)
	require.NoError(t, err)
	assert.Equal(t, "partial", v)

	_, err = l.Load(context.Background(), "key", factory)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "uncacheable result must not satisfy later calls")
}

func TestLoader_DisabledCacheStillCoalesces(t *testing.T) {
	l := NewLoader(New[string](0, time.Minute))

	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Load(context.Background(), "key", func(context.Context) (string, bool, error) {
				calls.Add(1)
				<-release
				return "v", true, nil
			})
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	_, ok := l.cache.Get("key")
	assert.False(t, ok, "disabled cache must not retain values")
}
