package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"seatreserve/internal/auth"
	"seatreserve/pkg/cache"
)

// ErrNoSession is returned by Load when nothing was saved
var ErrNoSession = errors.New("no stored session")

// Storage persists the signed-in session between runs of the client
type Storage interface {
	Save(ctx context.Context, s auth.Session) error
	Load(ctx context.Context) (*auth.Session, error)
	Clear(ctx context.Context) error
}

type MemoryStorage struct {
	mu      sync.Mutex
	session *auth.Session
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Save(ctx context.Context, s auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *MemoryStorage) Load(ctx context.Context) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	s := *m.session
	return &s, nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// RedisStorage keeps the session under a per-profile key with a TTL
type RedisStorage struct {
	cache cache.Service
	key   string
	ttl   time.Duration
}

func NewRedisStorage(cacheService cache.Service, profile string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		cache: cacheService,
		key:   cache.SessionKey(profile),
		ttl:   ttl,
	}
}

func (r *RedisStorage) Save(ctx context.Context, s auth.Session) error {
	if err := r.cache.Set(ctx, r.key, s, r.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStorage) Load(ctx context.Context) (*auth.Session, error) {
	var s auth.Session
	if err := r.cache.Get(ctx, r.key, &s); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s.Token == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.cache.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
