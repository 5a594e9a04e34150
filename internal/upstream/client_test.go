package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
	"github.com/styleshoehub/storefront-gateway/internal/model"
)

func TestClientForwardsActorHeader(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-User-Email")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	_, err := c.GetRaw(WithActor(context.Background(), "actor@shop.bd"), "/anything")
	require.NoError(t, err)
	assert.Equal(t, "actor@shop.bd", gotHeader)

	_, err = c.GetRaw(context.Background(), "/anything")
	require.NoError(t, err)
	assert.Empty(t, gotHeader)
}

func TestClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such policy", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	_, err := c.GetRaw(context.Background(), "/policies/missing")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "no such policy", apiErr.Body)
}

func TestPoliciesListDoesNotRetryRejections(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		http.Error(w, "bad page", http.StatusBadRequest)
	}))
	defer srv.Close()

	cache := NewQueryCache(kvcache.NewMemory(), "q", time.Minute)
	api := NewAPI(NewClient(srv.URL, zerolog.Nop()), cache, NewInvalidator(cache, nil))

	_, err := api.Policies.List(context.Background(), "999", "")
	require.Error(t, err)
	// A definitive upstream answer is final; only transport failures retry.
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))
}

func TestReviewsListSortsNewestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"r1","comment":"old","createdAt":"2026-01-01T00:00:00Z"},
			{"_id":"r3","comment":"new","createdAt":"2026-03-01T00:00:00Z"},
			{"_id":"r2","comment":"mid","createdAt":"2026-02-01T00:00:00Z"}
		]`))
	}))
	defer srv.Close()

	cache := NewQueryCache(kvcache.NewMemory(), "q", time.Minute)
	api := NewAPI(NewClient(srv.URL, zerolog.Nop()), cache, NewInvalidator(cache, nil))

	revs, err := api.Reviews.List(context.Background())
	require.NoError(t, err)
	require.Len(t, revs, 3)
	assert.Equal(t, []string{"r3", "r2", "r1"}, []string{revs[0].ID, revs[1].ID, revs[2].ID})
}

func TestRoleClientParsesAndRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/user/role/agent@shop.bd":
			_, _ = w.Write([]byte(`{"role":"agent"}`))
		default:
			_, _ = w.Write([]byte(`{"role":"superuser"}`))
		}
	}))
	defer srv.Close()

	rc := RoleClient{C: NewClient(srv.URL, zerolog.Nop())}

	role, err := rc.FetchRole(context.Background(), "agent@shop.bd")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAgent, role)

	_, err = rc.FetchRole(context.Background(), "weird@shop.bd")
	assert.ErrorIs(t, err, model.ErrUnknownRole)
}
