package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a bounded LRU cache with a fixed TTL per entry.
//
// Entries expire TTL after insertion regardless of how often they are read;
// a read refreshes an entry's recency (for eviction ordering) but not its
// expiry. Expired entries are removed when they are next accessed, not by a
// background sweep.
type Cache[V any] struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	items      map[string]*list.Element
	evictList  *list.List

	// now is swappable for expiry tests.
	now func() time.Time
}

type entry[V any] struct {
	key     string
	value   V
	expires time.Time
}

// New creates a cache holding at most maxEntries values for ttl each.
// A maxEntries of zero or less disables the cache: Set becomes a no-op and
// Get always misses.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		maxEntries: maxEntries,
		ttl:        ttl,
		items:      make(map[string]*list.Element),
		evictList:  list.New(),
		now:        time.Now,
	}
}

// Get returns the live value for key. Expired entries are removed and
// reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	ent, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := ent.Value.(*entry[V])
	if c.now().After(e.expires) {
		c.removeElement(ent)
		return zero, false
	}
	c.evictList.MoveToFront(ent)
	return e.value, true
}

// Set inserts or overwrites the value for key, evicting the
// least-recently-touched entry if the cache is over capacity.
func (c *Cache[V]) Set(key string, value V) {
	if c.maxEntries <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		e := ent.Value.(*entry[V])
		e.value = value
		e.expires = expires
		return
	}

	ent := c.evictList.PushFront(&entry[V]{key: key, value: value, expires: expires})
	c.items[key] = ent

	for c.evictList.Len() > c.maxEntries {
		oldest := c.evictList.Back()
		if oldest == nil {
			break
		}
		c.removeElement(oldest)
	}
}

// Len returns the number of stored entries, including any not yet swept
// expired ones.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *Cache[V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	delete(c.items, ent.Value.(*entry[V]).key)
}
