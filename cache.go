package filemagic

import (
	"sync"
	"time"
)

// Cache stores classification results keyed by a probe fingerprint.
//
// Implementations should be thread-safe.
type Cache interface {
	// Get returns the cached label and true if present and not expired.
	Get(key string) (string, bool)

	// Set stores a label with the given TTL. A TTL of 0 means no expiration.
	Set(key, label string, ttl time.Duration)

	// Clear removes all entries.
	Clear()
}

// CacheStats provides statistics about cache usage.
// Implementations may optionally support this interface.
type CacheStats interface {
	Stats() CacheStatistics
}

// CacheStatistics contains cache performance metrics.
type CacheStatistics struct {
	Hits      int64
	Misses    int64
	Size      int64
	Evictions int64
	HitRate   float64
}

type cacheEntry struct {
	label      string
	expiration time.Time
	hasExpiry  bool
}

func (e *cacheEntry) expired(now time.Time) bool {
	return e.hasExpiry && now.After(e.expiration)
}

// MemoryCache is an in-memory Cache with TTL expiration and an optional
// bound on the number of entries.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	maxEntries int
	hits       int64
	misses     int64
	evictions  int64
}

// NewMemoryCache creates a new in-memory cache. maxEntries <= 0 means unbounded.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
	}
}

// Get retrieves a label from the cache.
func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		return "", false
	}
	if entry.expired(time.Now()) {
		delete(c.entries, key)
		c.evictions++
		c.misses++
		return "", false
	}

	c.hits++
	return entry.label, true
}

// Set stores a label in the cache.
func (c *MemoryCache) Set(key, label string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOne()
	}

	entry := &cacheEntry{label: label}
	if ttl > 0 {
		entry.expiration = time.Now().Add(ttl)
		entry.hasExpiry = true
	}
	c.entries[key] = entry
}

// evictOne drops an expired entry if there is one, otherwise an arbitrary entry.
// Callers hold c.mu.
func (c *MemoryCache) evictOne() {
	now := time.Now()
	var victim string
	found := false
	for key, entry := range c.entries {
		if entry.expired(now) {
			victim, found = key, true
			break
		}
		if !found {
			victim, found = key, true
		}
	}
	if found {
		delete(c.entries, victim)
		c.evictions++
	}
}

// Clear removes all values from the cache.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Stats returns cache statistics.
func (c *MemoryCache) Stats() CacheStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return CacheStatistics{
		Hits:      c.hits,
		Misses:    c.misses,
		Size:      int64(len(c.entries)),
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}

// Cleanup removes expired entries from the cache.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			c.evictions++
		}
	}
}

// Ensure MemoryCache implements Cache and CacheStats
var (
	_ Cache      = (*MemoryCache)(nil)
	_ CacheStats = (*MemoryCache)(nil)
)
