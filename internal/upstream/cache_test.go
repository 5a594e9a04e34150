package upstream

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
	"github.com/styleshoehub/storefront-gateway/internal/model"
)

func newTestQueryCache() *QueryCache {
	return NewQueryCache(kvcache.NewMemory(), "q", time.Minute)
}

func TestQueryCacheSameKeySameEntry(t *testing.T) {
	q := newTestQueryCache()
	ctx := context.Background()
	var calls int64
	fetch := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		return []byte(`["a"]`), nil
	}

	// Two readers constructing the key independently hit the same entry.
	_, err := q.Get(ctx, K(ResPolicies, "list", "1", "running"), fetch)
	require.NoError(t, err)
	_, err = q.Get(ctx, K(ResPolicies, "list", "1", "running"), fetch)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))

	// A different part is a different entry.
	_, err = q.Get(ctx, K(ResPolicies, "list", "2", "running"), fetch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}

func TestQueryCacheErrorNotCached(t *testing.T) {
	q := newTestQueryCache()
	ctx := context.Background()
	var calls int64
	boom := errors.New("upstream 500")
	fetch := func(ctx context.Context) ([]byte, error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			return nil, boom
		}
		return []byte(`[]`), nil
	}

	_, err := q.Get(ctx, K(ResOrders, "list"), fetch)
	require.ErrorIs(t, err, boom)

	raw, err := q.Get(ctx, K(ResOrders, "list"), fetch)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}

func TestQueryCacheInvalidateResource(t *testing.T) {
	q := newTestQueryCache()
	ctx := context.Background()
	var calls int64
	fetch := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		return []byte(`["v"]`), nil
	}

	_, err := q.Get(ctx, K(ResBlogs, "list"), fetch)
	require.NoError(t, err)
	_, err = q.Get(ctx, K(ResBlogs, "author", "a@b.c"), fetch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))

	// One version bump unreaches every entry under the resource.
	q.InvalidateResource(ctx, ResBlogs)

	_, err = q.Get(ctx, K(ResBlogs, "list"), fetch)
	require.NoError(t, err)
	_, err = q.Get(ctx, K(ResBlogs, "author", "a@b.c"), fetch)
	require.NoError(t, err)
	assert.EqualValues(t, 4, atomic.LoadInt64(&calls))
}

func TestQueryCacheInvalidationIsScopedToResource(t *testing.T) {
	q := newTestQueryCache()
	ctx := context.Background()
	var calls int64
	fetch := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		return []byte(`[]`), nil
	}

	_, _ = q.Get(ctx, K(ResPolicies, "list"), fetch)
	_, _ = q.Get(ctx, K(ResReviews, "list"), fetch)
	q.InvalidateResource(ctx, ResReviews)

	_, _ = q.Get(ctx, K(ResPolicies, "list"), fetch)
	_, _ = q.Get(ctx, K(ResReviews, "list"), fetch)
	// Policies stayed cached; only reviews refetched.
	assert.EqualValues(t, 3, atomic.LoadInt64(&calls))
}

func TestQueryCacheCollapsesConcurrentMisses(t *testing.T) {
	q := newTestQueryCache()
	ctx := context.Background()
	var calls int64
	gate := make(chan struct{})
	fetch := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt64(&calls, 1)
		<-gate
		return []byte(`["one"]`), nil
	}

	const n = 6
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := q.Get(ctx, K(ResUsers, "list"), fetch)
			assert.NoError(t, err)
			assert.Equal(t, `["one"]`, string(raw))
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestGetJSONDecodes(t *testing.T) {
	q := newTestQueryCache()
	ctx := context.Background()
	fetch := func(ctx context.Context) ([]byte, error) {
		return []byte(`[{"_id":"p1","title":"Air Walk","price":120}]`), nil
	}

	got, err := GetJSON[[]model.Policy](ctx, q, K(ResPolicies, "list"), fetch)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "Air Walk", got[0].Title)
	assert.Equal(t, 120.0, got[0].Price)
}
