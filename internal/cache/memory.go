package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process TTL cache.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Memory{cache: gocache.New(ttl, 10*time.Minute)}
}

// Get retrieves a value, reporting whether it was present and unexpired.
func (m *Memory) Get(key string) (string, bool) {
	if val, found := m.cache.Get(key); found {
		return val.(string), true
	}
	return "", false
}

// Set stores a value under the default TTL.
func (m *Memory) Set(key, value string) {
	m.cache.SetDefault(key, value)
}

// Flush drops every entry.
func (m *Memory) Flush() {
	m.cache.Flush()
}

// Nop is a disabled cache, used when cache.enabled is false.
type Nop struct{}

func (Nop) Get(string) (string, bool) { return "", false }
func (Nop) Set(string, string)        {}
func (Nop) Flush()                    {}
