package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryService keeps JSON-encoded values in process, for runs without Redis.
// Values are stored encoded so callers never share memory with the cache.
type memoryService struct {
	items *gocache.Cache
}

// NewMemoryService returns an in-process Service. Expired entries are swept every cleanupInterval.
func NewMemoryService(cleanupInterval time.Duration) Service {
	return &memoryService{items: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *memoryService) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.items.Get(key)
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(raw.([]byte), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

func (m *memoryService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	// zero TTL means no expiry, as with Redis SET
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.items.Set(key, data, ttl)
	return nil
}

func (m *memoryService) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		m.items.Delete(key)
	}
	return nil
}

// DeletePattern accepts the Redis glob subset that path.Match understands
func (m *memoryService) DeletePattern(ctx context.Context, pattern string) error {
	for key := range m.items.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("cache pattern error: %w", err)
		}
		if matched {
			m.items.Delete(key)
		}
	}
	return nil
}

func (m *memoryService) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetch func() (interface{}, error)) error {
	return getOrSet(ctx, m, key, ttl, dest, fetch)
}

func (m *memoryService) Ping(ctx context.Context) error {
	return nil
}
