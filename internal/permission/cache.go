package permission

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a role's dynamic permissions are reused
// before the store is queried again.
const DefaultCacheTTL = 5 * time.Minute

// Modules maps module paths to the role's can_view flag.
type Modules map[string]bool

// Cache holds dynamic permissions per role name.
type Cache interface {
	Get(roleName string) (Modules, bool)
	Set(roleName string, modules Modules, ttl time.Duration)
	Invalidate(roleName string)
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache. Expired entries are dropped
// lazily on Get.
type MemoryCache[V any] struct {
	mu   sync.RWMutex
	data map[string]cacheEntry[V]
	now  func() time.Time
}

// NewMemoryCache creates an empty MemoryCache. A nil now uses time.Now.
func NewMemoryCache[V any](now func() time.Time) *MemoryCache[V] {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache[V]{data: make(map[string]cacheEntry[V]), now: now}
}

// Get returns the value for key if it has not expired.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.data[key]; ok && cur.expiresAt.Equal(entry.expiresAt) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Set stores value under key for ttl.
func (c *MemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = cacheEntry[V]{value: value, expiresAt: c.now().Add(ttl)}
}

// Invalidate removes key.
func (c *MemoryCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Reset removes every entry.
func (c *MemoryCache[V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]cacheEntry[V])
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
