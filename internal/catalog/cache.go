package catalog

import "sync"

// facetCache memoizes the most recent successful upstream response so the
// category and brand listings can be answered without a second round trip.
// It is a best-effort optimization, never a source of truth: when empty, the
// service re-fetches or derives facets from the product batch.
type facetCache struct {
	mu       sync.RWMutex
	env      *envelope
	products []Product
}

func (c *facetCache) set(env *envelope, products []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = env
	c.products = products
}

func (c *facetCache) get() (*envelope, []Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.env, c.products, c.env != nil
}

// invalidate drops the memoized response; the next facet lookup will hit the
// upstream again.
func (c *facetCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = nil
	c.products = nil
}
