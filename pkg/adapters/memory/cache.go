package memory

import (
	"context"
	"sync"

	"github.com/aretw0/vapor/pkg/domain"
)

// Cache implements ports.PropertyCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]*domain.PropertyRecord
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*domain.PropertyRecord),
	}
}

// Set stores a copy of the record.
func (c *Cache) Set(ctx context.Context, key string, record *domain.PropertyRecord) error {
	copied := clone(record)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = copied
	return nil
}

// Get returns a copy so callers can't mutate cached records through the pointer.
func (c *Cache) Get(ctx context.Context, key string) (*domain.PropertyRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return clone(record), nil
}

// Delete removes the record.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func clone(r *domain.PropertyRecord) *domain.PropertyRecord {
	out := *r
	if r.Antoine != nil {
		a := *r.Antoine
		out.Antoine = &a
	}
	return &out
}
