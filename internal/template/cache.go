package template

import "sync"

// Cache memoizes compiled templates by source text. The renamer compiles
// the same destination template for every file in a batch; the cache
// makes that one compilation. Failed compilations are not cached.
//
// A Cache is safe for concurrent use. The zero value is not usable;
// call NewCache.
type Cache struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewCache returns an empty template cache.
func NewCache() *Cache {
	return &Cache{templates: make(map[string]*Template)}
}

// Compile returns the cached compilation of src, compiling and storing
// it on first use.
func (c *Cache) Compile(src string) (*Template, error) {
	c.mu.RLock()
	t, ok := c.templates[src]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := Compile(src)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if cached, ok := c.templates[src]; ok {
		t = cached
	} else {
		c.templates[src] = t
	}
	c.mu.Unlock()
	return t, nil
}

// Len reports the number of cached templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}
