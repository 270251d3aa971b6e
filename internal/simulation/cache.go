package simulation

import (
	"context"
	"fmt"
	"sync"
)

// Simulator runs one simulation request. *Engine is the canonical
// implementation; CachedSimulator decorates it.
type Simulator interface {
	Run(ctx context.Context, params Params) (Result, error)
	CheckReadiness(ctx context.Context) error
}

// CachedSimulator wraps a Simulator with an in-memory LRU cache. Only
// explicitly seeded runs are cached, since those are fully deterministic;
// unseeded runs draw a fresh seed every time and always go to the inner
// simulator. A cache hit returns the result as originally computed,
// including its CompletedAt timestamp.
type CachedSimulator struct {
	inner Simulator
	cache *lruCache
}

// NewCachedSimulator creates a cache decorator around a simulator.
func NewCachedSimulator(inner Simulator, maxEntries int) *CachedSimulator {
	return &CachedSimulator{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedSimulator) Run(ctx context.Context, params Params) (Result, error) {
	if params.Seed == nil {
		return c.inner.Run(ctx, params)
	}

	key := cacheKey(params)
	if result, ok := c.cache.get(key); ok {
		return result, nil
	}
	result, err := c.inner.Run(ctx, params)
	if err != nil {
		return result, err
	}
	c.cache.put(key, result)
	return result, nil
}

func (c *CachedSimulator) CheckReadiness(ctx context.Context) error {
	return c.inner.CheckReadiness(ctx)
}

func cacheKey(params Params) string {
	return fmt.Sprintf("%g|%g|%g|%g|%g|%d|%d",
		params.RoofArea, params.RunoffCoefficient, params.DailyConsumption,
		params.MeanRainfall, params.StdDev, params.Days, *params.Seed)
}

// lruCache is a simple thread-safe LRU cache for simulation results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value Result
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value Result) {
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
