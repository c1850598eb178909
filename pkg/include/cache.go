package include

import (
	"sort"
	"sync"
)

// Cache maps fragment names to their processed markup (scripts removed).
// Entries are never evicted; once a name is stored later includes of that
// name reuse the same bytes.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Get returns the cached markup for name.
func (c *Cache) Get(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	content, ok := c.entries[name]
	return content, ok
}

// Put stores markup under name. An existing entry is kept as is.
func (c *Cache) Put(name, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]string)
	}
	if _, exists := c.entries[name]; exists {
		return
	}
	c.entries[name] = content
}

// Len reports the number of cached fragments.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Names lists cached fragment names in lexical order.
func (c *Cache) Names() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
