package directions

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/couchcryptid/flood-route-advisor/internal/observability"
	"github.com/couchcryptid/flood-route-advisor/internal/route"
)

// Provider is the route-fetching interface the cache decorates.
type Provider interface {
	FetchRoute(ctx context.Context, origin, destination string) (route.Route, error)
}

// CachedProvider wraps a Provider with an in-memory LRU cache keyed on the
// origin/destination pair.
type CachedProvider struct {
	inner   Provider
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a route provider.
func NewCachedProvider(inner Provider, maxEntries int, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedProvider) FetchRoute(ctx context.Context, origin, destination string) (route.Route, error) {
	key := cacheKey(origin, destination)
	if result, ok := c.cache.get(key); ok {
		c.metrics.DirectionsCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.DirectionsCache.WithLabelValues("miss").Inc()

	result, err := c.inner.FetchRoute(ctx, origin, destination)
	if err != nil {
		return result, err
	}
	// Only cache found routes so transient empty responses can be retried.
	if !result.Empty() {
		c.cache.put(key, result)
	}
	return result, nil
}

func cacheKey(origin, destination string) string {
	return fmt.Sprintf("%s|%s",
		strings.ToLower(strings.TrimSpace(origin)),
		strings.ToLower(strings.TrimSpace(destination)))
}

// lruCache is a simple thread-safe LRU cache for routes.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value route.Route
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (route.Route, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return route.Route{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value route.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
