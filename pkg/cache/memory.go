package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds a [MemoryCache] when no size is given.
const DefaultMemoryEntries = 256

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache keeps recently used entries in process. With a next cache it
// acts as a read-through tier: misses fall through to next and hits from
// next are promoted. Writes go to both.
//
// Promoted entries keep the memory tier's ttl, not the remaining lifetime
// in next.
type MemoryCache struct {
	lru  *lru.Cache[string, memoryEntry]
	next Cache
	ttl  time.Duration
}

// NewMemoryCache creates an LRU cache holding at most size entries. next
// may be nil. ttl bounds how long promoted entries live in memory.
func NewMemoryCache(size int, next Cache, ttl time.Duration) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	l, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: l, next: next, ttl: ttl}, nil
}

// Len returns the number of entries held in memory.
func (c *MemoryCache) Len() int { return c.lru.Len() }

// Get returns the in-memory entry or falls through to next.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if e, ok := c.lru.Get(key); ok {
		if !e.expired(time.Now()) {
			return e.data, true, nil
		}
		c.lru.Remove(key)
	}
	if c.next == nil {
		return nil, false, nil
	}
	data, ok, err := c.next.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	c.store(key, data, c.ttl)
	return data, true, nil
}

// Set stores data in memory and in next.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.store(key, data, ttl)
	if c.next == nil {
		return nil
	}
	return c.next.Set(ctx, key, data, ttl)
}

// Delete removes key from memory and from next.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	if c.next == nil {
		return nil
	}
	return c.next.Delete(ctx, key)
}

// Close purges memory and closes next.
func (c *MemoryCache) Close() error {
	c.lru.Purge()
	if c.next == nil {
		return nil
	}
	return c.next.Close()
}

func (c *MemoryCache) store(key string, data []byte, ttl time.Duration) {
	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.lru.Add(key, e)
}

var _ Cache = (*MemoryCache)(nil)
