package ai

import "sync"

// responseCache memoizes webhook replies keyed by the latest user
// message. Capacity is fixed; the oldest entry is evicted first.
type responseCache struct {
	mu    sync.Mutex
	cap   int
	items map[string]string
	order []string
}

func newResponseCache(capacity int) *responseCache {
	return &responseCache{
		cap:   capacity,
		items: make(map[string]string),
	}
}

func (c *responseCache) get(key string) (string, bool) {
	if c.cap <= 0 {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *responseCache) put(key, value string) {
	if c.cap <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		c.items[key] = value
		return
	}

	if len(c.order) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
	c.items[key] = value
	c.order = append(c.order, key)
}

func (c *responseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
