package upstream

import (
	"context"
	"net/url"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// ClaimsAPI covers payout/service claims against approved policies.
type ClaimsAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns every claim request (admin view), cached.
func (a *ClaimsAPI) List(ctx context.Context) ([]model.Claim, error) {
	return GetJSON[[]model.Claim](ctx, a.q, K(ResClaims, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/claimRequests")
	})
}

// ListByUser returns a customer's own claims, cached per email.
func (a *ClaimsAPI) ListByUser(ctx context.Context, email string) ([]model.Claim, error) {
	return GetJSON[[]model.Claim](ctx, a.q, K(ResClaims, "user", email), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/claims/user/"+url.PathEscape(email))
	})
}

// ListByAgent returns the claims routed to an agent for review, cached per
// agent email.
func (a *ClaimsAPI) ListByAgent(ctx context.Context, email string) ([]model.Claim, error) {
	return GetJSON[[]model.Claim](ctx, a.q, K(ResClaims, "agent", email), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/claims/agent/"+url.PathEscape(email))
	})
}

// Create submits a claim. Validation (reason present, document uploaded)
// happens before this is called; by the time the claim reaches here it is
// network-worthy.
func (a *ClaimsAPI) Create(ctx context.Context, cl model.Claim) error {
	if err := a.c.Post(ctx, "/claimRequests", cl, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutClaimWrite)
	return nil
}

// UpdateStatus is the agent's review verdict (PATCH /claims/status/{id}).
func (a *ClaimsAPI) UpdateStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	if err := a.c.Patch(ctx, "/claims/status/"+url.PathEscape(id), body, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutClaimWrite)
	return nil
}
