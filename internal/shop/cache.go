package shop

import (
	"sync/atomic"
	"time"
)

// cacheEntry snapshots one Listing and when it was stored. Entries are
// replaced wholesale, never mutated, so concurrent readers either see the
// previous complete Listing or the new one.
type cacheEntry struct {
	listing   *Listing
	createdAt time.Time
}

// Cache holds the single process-wide Listing slot with a time-to-live.
// A TTL of zero (or less) disables caching: every Get is a miss.
type Cache struct {
	ttl  time.Duration
	slot atomic.Pointer[cacheEntry]
	now  func() time.Time
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now}
}

// Get returns the cached Listing if it is younger than the TTL. An entry
// whose age has reached the TTL exactly is already stale.
func (c *Cache) Get() (*Listing, bool) {
	entry := c.slot.Load()
	if entry == nil {
		return nil, false
	}
	if c.ttl <= 0 || c.now().Sub(entry.createdAt) >= c.ttl {
		c.slot.CompareAndSwap(entry, nil)
		return nil, false
	}
	return entry.listing, true
}

// Set replaces the slot and resets the creation timestamp.
func (c *Cache) Set(listing *Listing) {
	c.slot.Store(&cacheEntry{listing: listing, createdAt: c.now()})
}

// Invalidate drops the cached Listing immediately.
func (c *Cache) Invalidate() {
	c.slot.Store(nil)
}
