package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"seatreserve/internal/auth"
	"seatreserve/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCache struct {
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newRecordingCache() *recordingCache {
	return &recordingCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *recordingCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.err != nil {
		return c.err
	}
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *recordingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.ttls[key] = ttl
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *recordingCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (c *recordingCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetch func() (interface{}, error)) error {
	return errors.New("not used")
}

func (c *recordingCache) Ping(ctx context.Context) error { return nil }

var demoSession = auth.Session{
	Token: "token-abc",
	User:  auth.User{ID: "user123", Name: "John Doe", Email: "john@company.com", Role: auth.RoleEmployee},
}

func TestStorageRoundTrip(t *testing.T) {
	storages := map[string]Storage{
		"memory": NewMemoryStorage(),
		"redis":  NewRedisStorage(newRecordingCache(), "default", time.Hour),
	}

	for name, storage := range storages {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := storage.Load(ctx)
			assert.ErrorIs(t, err, ErrNoSession)

			require.NoError(t, storage.Save(ctx, demoSession))
			got, err := storage.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, demoSession, *got)

			require.NoError(t, storage.Clear(ctx))
			_, err = storage.Load(ctx)
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestRedisStorageUsesProfileKeyAndTTL(t *testing.T) {
	c := newRecordingCache()
	storage := NewRedisStorage(c, "Kiosk", 30*time.Minute)

	require.NoError(t, storage.Save(context.Background(), demoSession))

	key := cache.SessionKey("kiosk")
	assert.Contains(t, c.data, key)
	assert.Equal(t, 30*time.Minute, c.ttls[key])
}

func TestRedisStorageSurfacesReadErrors(t *testing.T) {
	c := newRecordingCache()
	c.err = errors.New("connection refused")

	_, err := NewRedisStorage(c, "default", time.Hour).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
