package roles

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// countingFetcher counts upstream calls and can be told to block so that
// concurrent resolves really overlap.
type countingFetcher struct {
	calls int64
	role  model.Role
	err   error
	gate  chan struct{}
}

func (f *countingFetcher) FetchRole(ctx context.Context, email string) (model.Role, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.gate != nil {
		<-f.gate
	}
	return f.role, f.err
}

func TestResolveEmptyEmail(t *testing.T) {
	f := &countingFetcher{role: model.RoleCustomer}
	r := NewResolver(f, nil, time.Minute, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "")
	require.ErrorIs(t, err, model.ErrNoIdentity)
	assert.Zero(t, atomic.LoadInt64(&f.calls), "empty email must never query upstream")
}

func TestResolveCachesByEmail(t *testing.T) {
	f := &countingFetcher{role: model.RoleAgent}
	r := NewResolver(f, nil, time.Minute, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		role, err := r.Resolve(ctx, "Agent@Shop.BD")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAgent, role)
	}
	// Case and surrounding space do not fragment the cache.
	_, err := r.Resolve(ctx, "  agent@shop.bd ")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&f.calls))
}

func TestResolveCollapsesConcurrentMisses(t *testing.T) {
	f := &countingFetcher{role: model.RoleAdmin, gate: make(chan struct{})}
	r := NewResolver(f, nil, time.Minute, zerolog.Nop())
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	results := make([]model.Role, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role, err := r.Resolve(ctx, "admin@shop.bd")
			assert.NoError(t, err)
			results[i] = role
		}(i)
	}
	// Give the goroutines time to pile onto the same flight, then open it.
	time.Sleep(50 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	for _, role := range results {
		assert.Equal(t, model.RoleAdmin, role)
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&f.calls), "concurrent misses must share one fetch")
}

func TestResolveErrorIsNotCached(t *testing.T) {
	f := &countingFetcher{err: errors.New("upstream down")}
	r := NewResolver(f, nil, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := r.Resolve(ctx, "x@shop.bd")
	require.Error(t, err)

	f.err = nil
	f.role = model.RoleCustomer
	role, err := r.Resolve(ctx, "x@shop.bd")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, role)
	assert.EqualValues(t, 2, atomic.LoadInt64(&f.calls))
}

func TestInvalidateForcesRefetch(t *testing.T) {
	f := &countingFetcher{role: model.RoleCustomer}
	r := NewResolver(f, nil, time.Minute, zerolog.Nop())
	ctx := context.Background()

	role, err := r.Resolve(ctx, "promoted@shop.bd")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, role)

	// The backend promotes the user; the stale entry is dropped.
	f.role = model.RoleAgent
	r.Invalidate(ctx, "promoted@shop.bd")

	role, err = r.Resolve(ctx, "promoted@shop.bd")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAgent, role, "promotion must be visible on the next resolve")
	assert.EqualValues(t, 2, atomic.LoadInt64(&f.calls))
}

func TestCorruptCacheEntryIsDroppedAndRefetched(t *testing.T) {
	f := &countingFetcher{role: model.RoleAgent}
	mem := kvcache.NewMemory()
	r := NewResolver(f, mem, time.Minute, zerolog.Nop())
	ctx := context.Background()

	mem.Set(ctx, "role:broken@shop.bd", "superuser", time.Minute)

	role, err := r.Resolve(ctx, "broken@shop.bd")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAgent, role)
	assert.EqualValues(t, 1, atomic.LoadInt64(&f.calls))
}
