package upstream

import (
	"context"
	"net/url"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// OrdersAPI covers checkout orders plus the legacy food-order records left
// over from the template the backend grew out of (read/delete only).
type OrdersAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns all orders (admin view), cached.
func (a *OrdersAPI) List(ctx context.Context) ([]model.Order, error) {
	return GetJSON[[]model.Order](ctx, a.q, K(ResOrders, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/orders")
	})
}

// ListByEmail returns a customer's own orders, cached per email.
func (a *OrdersAPI) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return GetJSON[[]model.Order](ctx, a.q, K(ResOrders, "email", email), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/orders?email="+url.QueryEscape(email))
	})
}

// Create places an order and returns the created record.
func (a *OrdersAPI) Create(ctx context.Context, o model.Order) (model.Order, error) {
	var created model.Order
	if err := a.c.Post(ctx, "/orders", o, &created); err != nil {
		return model.Order{}, err
	}
	a.inv.MutationDone(ctx, MutOrderWrite)
	return created, nil
}

// UpdateStatus patches an order's status.
func (a *OrdersAPI) UpdateStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	if err := a.c.Patch(ctx, "/orders/"+url.PathEscape(id), body, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutOrderWrite)
	return nil
}

// Delete removes an order.
func (a *OrdersAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.Delete(ctx, "/orders/"+url.PathEscape(id)); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutOrderWrite)
	return nil
}

// FoodOrders lists the legacy records, cached.
func (a *OrdersAPI) FoodOrders(ctx context.Context) ([]model.Order, error) {
	return GetJSON[[]model.Order](ctx, a.q, K(ResFoodOrders, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/foodorders")
	})
}

// DeleteFoodOrder removes a legacy record; there is no create path.
func (a *OrdersAPI) DeleteFoodOrder(ctx context.Context, id string) error {
	if err := a.c.Delete(ctx, "/foodorders/"+url.PathEscape(id)); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutFoodOrderDelete)
	return nil
}
