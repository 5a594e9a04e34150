package upstream

import (
	"context"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// PoliciesAPI serves the catalog: shoe products on the storefront, policies
// on the dashboard.
type PoliciesAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns a catalog page, cached under ("policies","list",page,category).
// This is the one read with a retry policy: the landing page depends on it,
// so a transient upstream failure gets two more attempts before surfacing.
func (a *PoliciesAPI) List(ctx context.Context, page, category string) ([]model.Policy, error) {
	q := url.Values{}
	if page != "" {
		q.Set("page", page)
	}
	if category != "" {
		q.Set("category", category)
	}
	path := "/policies"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	return GetJSON[[]model.Policy](ctx, a.q, K(ResPolicies, "list", page, category), func(ctx context.Context) ([]byte, error) {
		var raw []byte
		op := func() error {
			var err error
			raw, err = a.c.GetRaw(ctx, path)
			if err != nil {
				// Upstream rejections are final; only transport errors retry.
				if _, ok := err.(*APIError); ok {
					return backoff.Permanent(err)
				}
				return err
			}
			return nil
		}
		pol := backoff.WithMaxRetries(backoff.NewConstantBackOff(300*time.Millisecond), 2)
		if err := backoff.Retry(op, backoff.WithContext(pol, ctx)); err != nil {
			return nil, err
		}
		return raw, nil
	})
}

// Get returns one catalog entry, cached under ("policies", id).
func (a *PoliciesAPI) Get(ctx context.Context, id string) (model.Policy, error) {
	return GetJSON[model.Policy](ctx, a.q, K(ResPolicies, id), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/policies/"+url.PathEscape(id))
	})
}

// Create adds a catalog entry (admin only at the route layer).
func (a *PoliciesAPI) Create(ctx context.Context, p model.Policy) error {
	if err := a.c.Post(ctx, "/policies", p, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutPolicyWrite)
	return nil
}

// Update patches a catalog entry.
func (a *PoliciesAPI) Update(ctx context.Context, id string, p model.Policy) error {
	if err := a.c.Patch(ctx, "/policies/"+url.PathEscape(id), p, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutPolicyWrite)
	return nil
}
