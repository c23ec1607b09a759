package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache stores encoded vectors by text.
type Cache interface {
	Get(ctx context.Context, key string) (Vector, bool, error)
	Set(ctx context.Context, key string, v Vector) error
}

// Cached memoizes an Oracle. Concurrent requests for the same text share a
// single upstream call.
type Cached struct {
	inner Oracle
	cache Cache
	group singleflight.Group
}

// WithCache wraps o with cache c.
func WithCache(o Oracle, c Cache) *Cached {
	return &Cached{inner: o, cache: c}
}

func (c *Cached) Encode(ctx context.Context, text string) (Vector, error) {
	key := cacheKey(text)
	if v, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return v, nil
	}

	// The shared call outlives any one caller; each waiter gives up on its
	// own context.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		v, err := c.inner.Encode(shared, text)
		if err != nil {
			return nil, err
		}
		// A cache write failure only costs a future recompute.
		_ = c.cache.Set(shared, key, v)
		return v, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Vector), nil
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}

// MemoryCache is a bounded in-process cache. When full it is cleared.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]Vector
	limit int
}

// NewMemoryCache returns a cache holding at most limit vectors.
func NewMemoryCache(limit int) *MemoryCache {
	if limit <= 0 {
		limit = 10_000
	}
	return &MemoryCache{items: make(map[string]Vector), limit: limit}
}

func (m *MemoryCache) Get(_ context.Context, key string) (Vector, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, v Vector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) >= m.limit {
		clear(m.items)
	}
	m.items[key] = v
	return nil
}

// Len returns the number of cached vectors.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// RedisCache shares vectors across server instances.
type RedisCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to addr and verifies the connection.
func NewRedisCache(ctx context.Context, addr, prefix string, ttl time.Duration) (*RedisCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	if prefix == "" {
		prefix = "dongwha:emb:"
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (Vector, bool, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	v, err := decodeVector(b)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, v Vector) error {
	return r.client.Set(ctx, r.prefix+key, encodeVector(v), r.ttl).Err()
}

// Close releases the Redis connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func encodeVector(v Vector) []byte {
	b := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(x))
	}
	return b
}

func decodeVector(b []byte) (Vector, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("corrupt vector: %d bytes", len(b))
	}
	v := make(Vector, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}
