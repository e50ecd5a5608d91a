package assets

import (
	"image"
	"sync"
)

// Resolver resolves an image path to a decoded NRGBA image.
type Resolver interface {
	Resolve(path string) *image.NRGBA
}

// Cache is a concurrency-safe load-once image cache for template bases and
// repeated design assets. Ownership is explicit: the caller that creates the
// cache controls its lifetime, and the engine never holds a global one.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img    *image.NRGBA
	loaded bool // load was attempted; img may still be nil
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Resolve loads and caches an image by path. Returns nil if it cannot be
// decoded; the failure is cached too, so a broken asset is read only once.
func (c *Cache) Resolve(path string) *image.NRGBA {
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	img, _ := Load(path)

	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, loaded: true}
	c.mu.Unlock()

	return img
}
