package specialties

import (
	"sort"
	"strings"
	"sync"
)

// Cache is the process-local overlay of specialties created on the fly. It
// satisfies the option-cache contract the form controller's combobox create
// flow expects: Add appends a new specialty, Invalidate flushes the overlay
// so the next fetch re-reads the source of record.
type Cache struct {
	mu     sync.RWMutex
	values []string
	index  map[string]struct{}
	stale  bool
}

// NewCache builds an empty cache, optionally seeded with known specialties.
func NewCache(seed ...string) *Cache {
	c := &Cache{index: map[string]struct{}{}}
	for _, value := range seed {
		c.add(value)
	}
	return c
}

// Add records a created specialty. It reports whether the value was new;
// duplicates, compared case-insensitively, are ignored.
func (c *Cache) Add(value string) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(value)
}

func (c *Cache) add(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	key := strings.ToLower(value)
	if _, ok := c.index[key]; ok {
		return false
	}
	c.index[key] = struct{}{}
	c.values = append(c.values, value)
	return true
}

// Invalidate discards the overlay and marks the cache stale until the next
// Replace. Callers use the stale flag to know a refetch is due.
func (c *Cache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = nil
	c.index = map[string]struct{}{}
	c.stale = true
}

// Replace swaps the cached overlay wholesale and clears the stale flag.
func (c *Cache) Replace(values []string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = nil
	c.index = map[string]struct{}{}
	for _, value := range values {
		c.add(value)
	}
	c.stale = false
}

// Values returns the cached specialties in insertion order.
func (c *Cache) Values() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string{}, c.values...)
}

// Stale reports whether Invalidate has been called since the last Replace.
func (c *Cache) Stale() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// Len returns the number of cached specialties.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// merge overlays cached specialties onto base, dropping case-insensitive
// duplicates and keeping the combined list sorted.
func merge(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]struct{}, len(base))
	out := make([]string, 0, len(base)+len(extra))
	for _, value := range base {
		seen[strings.ToLower(value)] = struct{}{}
		out = append(out, value)
	}
	for _, value := range extra {
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
