package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedVariants holds the existing variants of one product.
type cachedVariants struct {
	variants []Variant
	built    time.Time
}

// VariantCache caches existing variants per product so that recomputing drift on every
// option edit does not refetch storage. Concurrent misses share one load.
type VariantCache struct {
	loader VariantLoader
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]cachedVariants
	sf      singleflight.Group
}

// NewVariantCache creates a cache in front of loader. A zero TTL disables caching.
func NewVariantCache(loader VariantLoader, ttl time.Duration) *VariantCache {
	return &VariantCache{
		loader:  loader,
		ttl:     ttl,
		entries: make(map[string]cachedVariants),
	}
}

func (c *VariantCache) expired(e cachedVariants) bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return time.Since(e.built) > c.ttl
}

// Get returns the existing variants of a product, loading them when absent or expired.
func (c *VariantCache) Get(ctx context.Context, productID string) ([]Variant, error) {
	// Fast path
	c.mu.RLock()
	entry, ok := c.entries[productID]
	c.mu.RUnlock()
	if ok && !c.expired(entry) {
		return cloneVariants(entry.variants), nil
	}

	// The shared load outlives any single caller; the loader bounds its own calls.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(productID, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		entry, ok := c.entries[productID]
		c.mu.RUnlock()
		if ok && !c.expired(entry) {
			return entry.variants, nil
		}

		variants, err := c.loader.LoadVariants(loadCtx, productID)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[productID] = cachedVariants{variants: variants, built: time.Now()}
			c.mu.Unlock()
		}
		return variants, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneVariants(res.Val.([]Variant)), nil
	}
}

// Invalidate drops the cached variants of a product, e.g. after a commit.
func (c *VariantCache) Invalidate(productID string) {
	c.mu.Lock()
	delete(c.entries, productID)
	c.mu.Unlock()
}

func cloneVariants(in []Variant) []Variant {
	out := make([]Variant, len(in))
	copy(out, in)
	return out
}
