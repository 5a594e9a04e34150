package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
)

// Key is the explicit, hierarchical cache key for a read: a resource name
// plus whatever narrows it (id, page, filter, email). Two readers with the
// same Key share one in-flight request and one cached result.
type Key struct {
	Resource string
	Parts    []string
}

// K builds a key.
func K(resource string, parts ...string) Key { return Key{Resource: resource, Parts: parts} }

// QueryCache wraps every read of the data API. Entries are namespaced by a
// per-resource version counter, so invalidating a resource is one atomic
// increment instead of a key scan. Stale entries are simply never read
// again and fall out by TTL.
type QueryCache struct {
	store  kvcache.Cache
	prefix string
	ttl    time.Duration
	sf     singleflight.Group
}

func NewQueryCache(store kvcache.Cache, prefix string, ttl time.Duration) *QueryCache {
	if store == nil {
		store = kvcache.NewMemory()
	}
	if prefix == "" {
		prefix = "q"
	}
	return &QueryCache{store: store, prefix: prefix, ttl: ttl}
}

func (q *QueryCache) versionKey(resource string) string {
	return q.prefix + ":ver:" + resource
}

// entryKey folds the resource's current version into the stored key.
func (q *QueryCache) entryKey(ctx context.Context, k Key) string {
	ver, _ := q.store.Get(ctx, q.versionKey(k.Resource))
	if ver == "" {
		ver = "0"
	}
	parts := append([]string{q.prefix, k.Resource, "v" + ver}, k.Parts...)
	return strings.Join(parts, ":")
}

// Fetch is the function that performs the real read on a cache miss.
type Fetch func(ctx context.Context) ([]byte, error)

// Get returns the cached bytes for a key, fetching on miss. Concurrent
// misses for one key are collapsed by singleflight; errors are returned to
// every waiter and nothing is cached.
func (q *QueryCache) Get(ctx context.Context, k Key, fetch Fetch) ([]byte, error) {
	ek := q.entryKey(ctx, k)
	if v, ok := q.store.Get(ctx, ek); ok {
		return []byte(v), nil
	}
	v, err, _ := q.sf.Do(ek, func() (interface{}, error) {
		// Re-check inside the flight: a concurrent winner may have
		// populated the entry while this caller queued.
		if v, ok := q.store.Get(ctx, ek); ok {
			return []byte(v), nil
		}
		raw, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		q.store.Set(ctx, ek, string(raw), q.ttl)
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// InvalidateResource bumps the resource version so every cached read under
// it becomes unreachable.
func (q *QueryCache) InvalidateResource(ctx context.Context, resource string) {
	q.store.Incr(ctx, q.versionKey(resource))
}

// GetJSON is Get plus decoding into out.
func GetJSON[T any](ctx context.Context, q *QueryCache, k Key, fetch Fetch) (T, error) {
	var out T
	raw, err := q.Get(ctx, k, fetch)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode cached %s: %w", k.Resource, err)
	}
	return out, nil
}
