// Package kvcache is the small key/value surface shared by the role cache
// and the upstream query cache. Redis backs it in production; an in-process
// map stands in when Redis is unavailable so the gateway keeps serving.
package kvcache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is deliberately tiny: get, set with TTL, delete, and an atomic
// counter used for resource versioning.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, val string, ttl time.Duration)
	Del(ctx context.Context, key string)
	Incr(ctx context.Context, key string) int64
}

// New returns a Redis-backed cache, or the in-memory fallback when rdb is
// nil.
func New(rdb *redis.Client) Cache {
	if rdb == nil {
		return NewMemory()
	}
	return Redis{RDB: rdb}
}

// Redis adapts a redis client to the Cache interface. Errors degrade to
// misses; the caller refetches from upstream.
type Redis struct{ RDB *redis.Client }

func (c Redis) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.RDB.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (c Redis) Set(ctx context.Context, key, val string, ttl time.Duration) {
	_ = c.RDB.Set(ctx, key, val, ttl).Err()
}

func (c Redis) Del(ctx context.Context, key string) {
	_ = c.RDB.Del(ctx, key).Err()
}

func (c Redis) Incr(ctx context.Context, key string) int64 {
	n, err := c.RDB.Incr(ctx, key).Result()
	if err != nil {
		return 0
	}
	return n
}

// Memory is the in-process fallback, also used throughout the tests.
// Entries expire lazily on read.
type Memory struct {
	mu sync.Mutex
	m  map[string]memoryEntry
}

type memoryEntry struct {
	val string
	exp time.Time
}

func NewMemory() *Memory { return &Memory{m: make(map[string]memoryEntry)} }

func (c *Memory) Get(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		return "", false
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(c.m, key)
		return "", false
	}
	return e.val, true
}

func (c *Memory) Set(ctx context.Context, key, val string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.m[key] = memoryEntry{val: val, exp: exp}
}

func (c *Memory) Del(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

func (c *Memory) Incr(ctx context.Context, key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.m[key].val, 10, 64)
	n++
	c.m[key] = memoryEntry{val: strconv.FormatInt(n, 10)}
	return n
}
