package upstream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
)

// A changed dependency edge silently changes which screens go stale, so
// the map is pinned down explicitly.
func TestDependencyMap(t *testing.T) {
	cases := map[string][]string{
		MutUserCreate:       {ResUsers},
		MutUserRoleUpdate:   {ResUsers},
		MutUserDelete:       {ResUsers},
		MutPolicyWrite:      {ResPolicies},
		MutApplicationWrite: {ResApplications, ResAgents},
		MutAgentAssign:      {ResAgents, ResApplications},
		MutClaimWrite:       {ResClaims},
		MutOrderWrite:       {ResOrders, ResCart},
		MutFoodOrderDelete:  {ResFoodOrders},
		MutBlogWrite:        {ResBlogs},
		MutReviewCreate:     {ResReviews},
		MutPaymentRecord:    {ResPayments, ResOrders},
		MutCartWrite:        {ResCart},
	}
	for mutation, want := range cases {
		assert.Equal(t, want, Deps(mutation), "deps for %s", mutation)
	}
}

func TestUnknownMutationInvalidatesNothing(t *testing.T) {
	assert.Empty(t, Deps("order.telepathy"))
}

type recordingRoleInvalidator struct {
	emails []string
}

func (r *recordingRoleInvalidator) Invalidate(ctx context.Context, email string) {
	r.emails = append(r.emails, email)
}

func TestMutationDoneBumpsMappedResources(t *testing.T) {
	q := NewQueryCache(kvcache.NewMemory(), "q", time.Minute)
	iv := NewInvalidator(q, nil)
	ctx := context.Background()

	fetches := map[string]int{}
	fetchFor := func(name string) Fetch {
		return func(ctx context.Context) ([]byte, error) {
			fetches[name]++
			return []byte(`[]`), nil
		}
	}

	_, err := q.Get(ctx, K(ResOrders, "list"), fetchFor("orders"))
	require.NoError(t, err)
	_, err = q.Get(ctx, K(ResCart, "c@shop.bd"), fetchFor("cart"))
	require.NoError(t, err)
	_, err = q.Get(ctx, K(ResPolicies, "list"), fetchFor("policies"))
	require.NoError(t, err)

	// Placing an order stales both the order list and the cart the order
	// was built from; the catalog is untouched.
	iv.MutationDone(ctx, MutOrderWrite)

	_, _ = q.Get(ctx, K(ResOrders, "list"), fetchFor("orders"))
	_, _ = q.Get(ctx, K(ResCart, "c@shop.bd"), fetchFor("cart"))
	_, _ = q.Get(ctx, K(ResPolicies, "list"), fetchFor("policies"))

	assert.Equal(t, 2, fetches["orders"])
	assert.Equal(t, 2, fetches["cart"])
	assert.Equal(t, 1, fetches["policies"])
}

func TestRoleUpdateDropsBothCaches(t *testing.T) {
	q := NewQueryCache(kvcache.NewMemory(), "q", time.Minute)
	rec := &recordingRoleInvalidator{}
	iv := NewInvalidator(q, rec)
	ctx := context.Background()

	usersFetches := 0
	_, err := q.Get(ctx, K(ResUsers, "list"), func(ctx context.Context) ([]byte, error) {
		usersFetches++
		return []byte(`[]`), nil
	})
	require.NoError(t, err)

	iv.MutationDone(ctx, MutUserRoleUpdate, "promoted@shop.bd")

	_, _ = q.Get(ctx, K(ResUsers, "list"), func(ctx context.Context) ([]byte, error) {
		usersFetches++
		return []byte(`[]`), nil
	})
	assert.Equal(t, 2, usersFetches, "users list must refetch after a role change")
	assert.Equal(t, []string{"promoted@shop.bd"}, rec.emails, "the target's cached role must drop too")
}

func TestNonRoleMutationLeavesRolesAlone(t *testing.T) {
	q := NewQueryCache(kvcache.NewMemory(), "q", time.Minute)
	rec := &recordingRoleInvalidator{}
	iv := NewInvalidator(q, rec)

	iv.MutationDone(context.Background(), MutUserDelete, "gone@shop.bd")
	assert.Empty(t, rec.emails)
}
