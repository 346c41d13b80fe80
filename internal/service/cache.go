// Package service contains the business logic of the laundry service: pricing,
// catalog administration, authentication and the request log.
package service

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/metrics"
	"github.com/guttosm/laundry-service/internal/service/cache"
)

// Cache names used as the metrics label.
const (
	quoteCacheName   = "quotes"
	catalogCacheName = "catalog"
)

// cachedTime is refreshed every 100ms and used where a slightly stale clock is fine.
var (
	cachedTime     atomic.Value
	cachedTimeOnce sync.Once
)

func init() {
	initCachedTime()
}

func initCachedTime() {
	cachedTimeOnce.Do(func() {
		cachedTime.Store(time.Now())
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			for t := range ticker.C {
				cachedTime.Store(t)
			}
		}()
	})
}

func now() time.Time {
	if t, ok := cachedTime.Load().(time.Time); ok {
		return t
	}
	return time.Now()
}

// MemoryQuoteStore is an in-process quote store. Entries are spread over shards
// to reduce lock contention; each shard is an LRU bounded by capacity with
// per-entry expiry.
type MemoryQuoteStore struct {
	shards    []*ttlCache[model.Quote]
	shardMask uint32
	capacity  int
}

var _ cache.QuoteStoreWithMetrics = (*MemoryQuoteStore)(nil)

// NewMemoryQuoteStore creates a store holding at most capacity quotes for ttl each.
// numShards is rounded up to a power of two; non-positive values mean 16.
func NewMemoryQuoteStore(capacity int, ttl time.Duration, numShards int) *MemoryQuoteStore {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*ttlCache[model.Quote], n)
	for i := range shards {
		shards[i] = newTTLCache[model.Quote](quoteCacheName, perShard, ttl)
	}

	return &MemoryQuoteStore{
		shards:    shards,
		shardMask: uint32(n - 1),
		capacity:  perShard * n,
	}
}

func (s *MemoryQuoteStore) shard(id string) *ttlCache[model.Quote] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[h.Sum32()&s.shardMask]
}

// Get returns the quote with the given id.
func (s *MemoryQuoteStore) Get(_ context.Context, id string) (model.Quote, bool, error) {
	q, ok := s.shard(id).Get(id)
	return q, ok, nil
}

// Set stores a quote until its ExpiresAt.
func (s *MemoryQuoteStore) Set(_ context.Context, quote model.Quote) error {
	s.shard(quote.ID).SetUntil(quote.ID, quote, quote.ExpiresAt)
	s.reportSize()
	return nil
}

// Invalidate removes a quote.
func (s *MemoryQuoteStore) Invalidate(_ context.Context, id string) error {
	s.shard(id).Invalidate(id)
	return nil
}

// Clear removes every quote.
func (s *MemoryQuoteStore) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
	s.reportSize()
}

// Stop shuts down the cleanup goroutines of all shards.
func (s *MemoryQuoteStore) Stop() {
	for _, shard := range s.shards {
		shard.Stop()
	}
}

// Metrics returns aggregated metrics from all shards.
func (s *MemoryQuoteStore) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, shard := range s.shards {
		m := shard.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

func (s *MemoryQuoteStore) reportSize() {
	size := 0
	for _, shard := range s.shards {
		size += shard.Len()
	}
	metrics.UpdateCacheMetrics(quoteCacheName, size, s.capacity)
}

// ttlCache is a thread-safe LRU cache with per-entry expiry.
type ttlCache[V any] struct {
	name      string
	mu        sync.RWMutex
	capacity  int
	ttl       time.Duration
	items     map[string]*cacheEntry[V]
	head      *cacheEntry[V]
	tail      *cacheEntry[V]
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      int64
	misses    int64
	evictions int64
}

type cacheEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *cacheEntry[V]
	next      *cacheEntry[V]
}

// newTTLCache creates a cache and starts its background cleanup goroutine.
func newTTLCache[V any](name string, capacity int, ttl time.Duration) *ttlCache[V] {
	if capacity < 1 {
		capacity = 1
	}
	c := &ttlCache[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*cacheEntry[V], capacity),
		stopCh:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Stop shuts down the cleanup goroutine.
func (c *ttlCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Len returns the number of entries, expired ones included until cleanup.
func (c *ttlCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Metrics returns current cache performance metrics.
func (c *ttlCache[V]) Metrics() cache.Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cache.Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// Get returns the value for key if present and not expired.
func (c *ttlCache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}

	// Exact clock here: a 100ms stale one makes short TTLs flaky.
	if time.Now().After(entry.expiresAt) {
		c.removeEntry(entry)
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "expired")
		return zero, false
	}

	c.moveToFront(entry)
	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return entry.value, true
}

// Set stores value for the configured TTL.
func (c *ttlCache[V]) Set(key string, value V) {
	c.SetUntil(key, value, time.Time{})
}

// SetUntil stores value until expiresAt, or for the configured TTL when expiresAt is zero.
// The least recently used entry is evicted when the cache is full.
func (c *ttlCache[V]) SetUntil(key string, value V, expiresAt time.Time) {
	if expiresAt.IsZero() {
		expiresAt = now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		metrics.RecordCacheOperation(c.name, "set", "update")
		return
	}

	entry := &cacheEntry[V]{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	}
	c.items[key] = entry
	c.addToFront(entry)

	if len(c.items) > c.capacity {
		c.removeTail()
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
	metrics.RecordCacheOperation(c.name, "set", "success")
}

// Invalidate removes key from the cache.
func (c *ttlCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
	}
}

// Clear removes all entries and resets the counters.
func (c *ttlCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheEntry[V], c.capacity)
	c.head = nil
	c.tail = nil

	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)

	metrics.RecordCacheOperation(c.name, "clear", "success")
}

func (c *ttlCache[V]) startCleanup() {
	interval := time.Minute
	if c.ttl > 0 && c.ttl < interval {
		interval = c.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

func (c *ttlCache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := now()
	for _, entry := range c.items {
		if current.After(entry.expiresAt) {
			c.removeEntry(entry)
		}
	}
}

func (c *ttlCache[V]) removeEntry(entry *cacheEntry[V]) {
	delete(c.items, entry.key)
	c.unlink(entry)
}

func (c *ttlCache[V]) moveToFront(entry *cacheEntry[V]) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.addToFront(entry)
}

func (c *ttlCache[V]) addToFront(entry *cacheEntry[V]) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

func (c *ttlCache[V]) unlink(entry *cacheEntry[V]) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}

func (c *ttlCache[V]) removeTail() {
	if c.tail != nil {
		c.removeEntry(c.tail)
	}
}
