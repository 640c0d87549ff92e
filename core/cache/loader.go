package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Loader layers request coalescing on top of a Cache.
//
// Load first consults the cache. On a miss, concurrent callers for the same
// key attach to a single in-flight operation and all observe its outcome;
// the in-flight ticket is dropped as soon as the operation settles, so a
// failure never poisons the key. Whether a successful result is cached is
// decided by the factory itself via its cacheable return value (a registry
// answer without a year, for example, is returned but not retained).
type Loader[V any] struct {
	cache *Cache[V]
	group singleflight.Group
}

// NewLoader creates a Loader over the given cache.
func NewLoader[V any](c *Cache[V]) *Loader[V] {
	return &Loader[V]{cache: c}
}

// Load returns the cached value for key, or runs fn to produce it.
//
// fn runs at most once per key across concurrent callers. The context passed
// to fn is the one supplied by whichever caller created the in-flight
// operation; later callers share its result even if their own contexts differ.
func (l *Loader[V]) Load(ctx context.Context, key string, fn func(ctx context.Context) (value V, cacheable bool, err error)) (V, error) {
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		value, cacheable, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if cacheable {
			l.cache.Set(key, value)
		}
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
