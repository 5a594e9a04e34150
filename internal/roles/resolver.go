// Package roles resolves a signed-in email to its dashboard role. The role
// is a backend-owned fact fetched from the upstream API and cached under a
// stable key per email; concurrent resolves for one email collapse into a
// single upstream call.
package roles

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// Fetcher is the upstream call GET /user/role/{email}. It is an interface
// so tests can count invocations without a network.
type Fetcher interface {
	FetchRole(ctx context.Context, email string) (model.Role, error)
}

// Resolver caches role lookups under "role:<email>". An empty email never
// queries: callers gate on a resolved session first.
type Resolver struct {
	fetch Fetcher
	cache kvcache.Cache
	ttl   time.Duration
	sf    singleflight.Group
	log   zerolog.Logger
}

func NewResolver(f Fetcher, c kvcache.Cache, ttl time.Duration, log zerolog.Logger) *Resolver {
	if c == nil {
		c = kvcache.NewMemory()
	}
	return &Resolver{fetch: f, cache: c, ttl: ttl, log: log.With().Str("component", "roles").Logger()}
}

func key(email string) string { return "role:" + strings.ToLower(strings.TrimSpace(email)) }

// Resolve returns the role for an email, from cache when possible. Cache
// misses go through singleflight so that two callers asking for the same
// email share one in-flight request.
func (r *Resolver) Resolve(ctx context.Context, email string) (model.Role, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", model.ErrNoIdentity
	}
	k := key(email)
	if v, ok := r.cache.Get(ctx, k); ok {
		if role, err := model.ParseRole(v); err == nil {
			return role, nil
		}
		// A corrupt entry is dropped and refetched.
		r.cache.Del(ctx, k)
	}
	v, err, _ := r.sf.Do(k, func() (interface{}, error) {
		role, err := r.fetch.FetchRole(ctx, email)
		if err != nil {
			return nil, err
		}
		r.cache.Set(ctx, k, role.String(), r.ttl)
		return role, nil
	})
	if err != nil {
		r.log.Warn().Err(err).Str("email", email).Msg("role fetch failed")
		return "", err
	}
	return v.(model.Role), nil
}

// Invalidate drops the cached role for an email. Role-mutating actions call
// this in the same breath as invalidating the users list, so a promotion is
// visible on the very next resolve inside the same session.
func (r *Resolver) Invalidate(ctx context.Context, email string) {
	r.cache.Del(ctx, key(email))
}
