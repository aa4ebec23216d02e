package shop

import (
	"testing"
	"time"
)

func TestCacheHitWithinTTL(t *testing.T) {
	now := time.Now()
	c := NewCache(10 * time.Second)
	c.now = func() time.Time { return now }

	listing := &Listing{Success: "v1"}
	c.Set(listing)

	now = now.Add(9 * time.Second)
	got, ok := c.Get()
	if !ok {
		t.Fatal("expected hit inside TTL")
	}
	if got != listing {
		t.Fatal("expected the exact stored listing back")
	}
}

func TestCacheMissAtBoundary(t *testing.T) {
	now := time.Now()
	c := NewCache(10 * time.Second)
	c.now = func() time.Time { return now }

	c.Set(&Listing{})

	// Exactly TTL old is already stale.
	now = now.Add(10 * time.Second)
	if _, ok := c.Get(); ok {
		t.Fatal("expected miss at the TTL boundary")
	}
	// Stale entry is dropped, not merely hidden.
	now = now.Add(-5 * time.Second)
	if _, ok := c.Get(); ok {
		t.Fatal("expected subsequent calls to keep missing")
	}
}

func TestCacheZeroTTLAlwaysMisses(t *testing.T) {
	c := NewCache(0)
	c.Set(&Listing{})
	if _, ok := c.Get(); ok {
		t.Fatal("expected miss with zero TTL")
	}
}

func TestCacheEmptyMisses(t *testing.T) {
	c := NewCache(time.Minute)
	if _, ok := c.Get(); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestCacheSetReplacesWholesale(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set(&Listing{Success: "v1"})
	second := &Listing{Success: "v2"}
	c.Set(second)

	got, ok := c.Get()
	if !ok || got != second {
		t.Fatalf("expected replacement listing, got %+v", got)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set(&Listing{})
	c.Invalidate()
	if _, ok := c.Get(); ok {
		t.Fatal("expected miss after invalidate")
	}
}
