package upstream

import (
	"context"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// PaymentsAPI records settlements and brokers payment intents. The card
// never touches the gateway: the backend asks the payment provider for a
// client secret and the browser confirms against the provider directly.
type PaymentsAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns recorded payments (admin view), cached.
func (a *PaymentsAPI) List(ctx context.Context) ([]model.Payment, error) {
	return GetJSON[[]model.Payment](ctx, a.q, K(ResPayments, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/payments")
	})
}

// Record stores a completed payment.
func (a *PaymentsAPI) Record(ctx context.Context, p model.Payment) error {
	if err := a.c.Post(ctx, "/payments", p, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutPaymentRecord)
	return nil
}

// CreateIntent asks for a payment intent and returns the provider's client
// secret (POST /create-payment-intent).
func (a *PaymentsAPI) CreateIntent(ctx context.Context, amount float64, currency string) (string, error) {
	var out struct {
		ClientSecret string `json:"clientSecret"`
	}
	body := map[string]any{"amount": amount, "currency": currency}
	if err := a.c.Post(ctx, "/create-payment-intent", body, &out); err != nil {
		return "", err
	}
	return out.ClientSecret, nil
}
