package googlemaps

import (
	"context"
	"sync"

	"github.com/enterstudio/location-normalizer/internal/domain"
	"github.com/enterstudio/location-normalizer/internal/observability"
)

// CachedPlaces wraps a PlacesAPI with an in-memory LRU cache. Empty results
// are cached too: the same misspelled venue arrives on every sync run, and
// re-querying the provider for it each time burns quota for nothing. Errors
// are never cached. Timezone lookups pass through uncached; they happen once
// per resolved record, not per fan-out query.
type CachedPlaces struct {
	inner   domain.PlacesAPI
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedPlaces creates a cache decorator around a places client.
func NewCachedPlaces(inner domain.PlacesAPI, maxEntries int, metrics *observability.Metrics) *CachedPlaces {
	return &CachedPlaces{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedPlaces) PlaceSearch(ctx context.Context, query string, bias *domain.LatLng, mode domain.SearchMode) ([]domain.SearchCandidate, error) {
	op := string(mode)
	key := op + ":" + query
	if bias != nil {
		key += "|" + formatLatLng(*bias)
	}
	if v, ok := c.cache.get(key); ok {
		c.metrics.PlacesCache.WithLabelValues(op, "hit").Inc()
		return v.([]domain.SearchCandidate), nil
	}
	c.metrics.PlacesCache.WithLabelValues(op, "miss").Inc()

	results, err := c.inner.PlaceSearch(ctx, query, bias, mode)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, results)
	return results, nil
}

func (c *CachedPlaces) PlaceDetails(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	key := "details:" + placeID
	if v, ok := c.cache.get(key); ok {
		c.metrics.PlacesCache.WithLabelValues("details", "hit").Inc()
		return v.(*domain.PlaceDetails), nil
	}
	c.metrics.PlacesCache.WithLabelValues("details", "miss").Inc()

	details, err := c.inner.PlaceDetails(ctx, placeID)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, details)
	return details, nil
}

func (c *CachedPlaces) Geocode(ctx context.Context, address string) ([]domain.SearchCandidate, error) {
	key := "geocode:" + address
	if v, ok := c.cache.get(key); ok {
		c.metrics.PlacesCache.WithLabelValues("geocode", "hit").Inc()
		return v.([]domain.SearchCandidate), nil
	}
	c.metrics.PlacesCache.WithLabelValues("geocode", "miss").Inc()

	results, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, results)
	return results, nil
}

func (c *CachedPlaces) TimezoneLookup(ctx context.Context, loc domain.LatLng) (string, error) {
	return c.inner.TimezoneLookup(ctx, loc)
}

// lruCache is a simple thread-safe LRU cache.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value any
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value any) {
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
