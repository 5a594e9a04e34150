package upstream

import (
	"context"
	"net/url"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// CartAPI is the raw cart transport; the cart package layers validation and
// mirror semantics on top of it.
type CartAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// Items returns a user's full cart, cached per email.
func (a *CartAPI) Items(ctx context.Context, email string) ([]model.CartItem, error) {
	return GetJSON[[]model.CartItem](ctx, a.q, K(ResCart, email), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/cart?email="+url.QueryEscape(email))
	})
}

// Add posts one line item.
func (a *CartAPI) Add(ctx context.Context, item model.CartItem) error {
	if err := a.c.Post(ctx, "/cart", item, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutCartWrite)
	return nil
}

// Remove deletes one line item by id.
func (a *CartAPI) Remove(ctx context.Context, itemID string) error {
	if err := a.c.Delete(ctx, "/cart/"+url.PathEscape(itemID)); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutCartWrite)
	return nil
}

// Clear empties a user's cart.
func (a *CartAPI) Clear(ctx context.Context, email string) error {
	if err := a.c.Delete(ctx, "/cart?email="+url.QueryEscape(email)); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutCartWrite)
	return nil
}
