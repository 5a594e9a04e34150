package upstream

import (
	"context"
	"sort"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// ReviewsAPI covers public storefront reviews, plus the newsletter
// subscription endpoint which has no resource of its own.
type ReviewsAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns reviews newest-first, cached. The sort is a presentation
// concern done here once instead of in every page.
func (a *ReviewsAPI) List(ctx context.Context) ([]model.Review, error) {
	revs, err := GetJSON[[]model.Review](ctx, a.q, K(ResReviews, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/reviews")
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i].CreatedAt.After(revs[j].CreatedAt) })
	return revs, nil
}

// Create posts a review.
func (a *ReviewsAPI) Create(ctx context.Context, r model.Review) error {
	if err := a.c.Post(ctx, "/reviews", r, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutReviewCreate)
	return nil
}

// SubscribeNewsletter forwards a newsletter signup. Nothing is cached and
// nothing invalidates.
func (a *ReviewsAPI) SubscribeNewsletter(ctx context.Context, email, name string) error {
	return a.c.Post(ctx, "/subscribe-newsletter", map[string]string{"email": email, "name": name}, nil)
}
