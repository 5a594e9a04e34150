package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/queue"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// Publisher is the broker seam (queue_publisher.Publisher in production).
// A nil publisher disables events without touching the request flow.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// OrdersHandler drives checkout: order creation, payment intent, payment
// record, activity event.
type OrdersHandler struct {
	API       *upstream.API
	Publisher Publisher
	Log       zerolog.Logger
}

func NewOrdersHandler(api *upstream.API, pub Publisher, log zerolog.Logger) *OrdersHandler {
	return &OrdersHandler{API: api, Publisher: pub, Log: log.With().Str("component", "orders").Logger()}
}

type checkoutReq struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,e164"`
	Address string `json:"address" validate:"required"`
}

// Checkout handles POST /orders: the signed-in user's cart becomes an
// order, a payment intent is opened and the client secret returned for the
// browser to confirm against the payment provider.
func (h *OrdersHandler) Checkout(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req checkoutReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ctx = upstream.WithActor(ctx, id.Email)

	items, err := h.API.Cart.Items(ctx, id.Email)
	if err != nil {
		return upstreamError(c, "load cart", err)
	}
	if len(items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}
	total := 0.0
	titles := make([]string, 0, len(items))
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
		titles = append(titles, it.Title)
	}

	order, err := h.API.Orders.Create(ctx, model.Order{
		Email:    id.Email,
		Items:    items,
		Total:    total,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Status:   "Pending",
		PlacedAt: time.Now().UTC(),
	})
	if err != nil {
		return upstreamError(c, "place order", err)
	}

	secret, err := h.API.Payments.CreateIntent(ctx, total, "usd")
	if err != nil {
		return upstreamError(c, "open payment", err)
	}

	if h.Publisher != nil {
		ev := queue.OrderPlacedEvent{
			EventID:  uuid.NewString(),
			OrderID:  order.ID,
			Email:    id.Email,
			Items:    titles,
			Total:    total,
			PlacedAt: order.PlacedAt.Format(time.RFC3339),
		}
		if err := h.Publisher.Publish(ctx, ev); err != nil {
			h.Log.Warn().Err(err).Str("order", order.ID).Msg("order event publish failed")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"order":        order,
		"clientSecret": secret,
	})
}

type paymentRecordReq struct {
	TransactionID string  `json:"transactionId" validate:"required"`
	ReferenceID   string  `json:"referenceId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

// RecordPayment handles POST /payments after the browser confirms the
// intent: the settlement is stored with an idempotency id.
func (h *OrdersHandler) RecordPayment(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req paymentRecordReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.API.Payments.Record(upstream.WithActor(ctx, id.Email), model.Payment{
		ID:            uuid.NewString(),
		Email:         id.Email,
		Amount:        req.Amount,
		Currency:      "usd",
		TransactionID: req.TransactionID,
		ReferenceID:   req.ReferenceID,
		PaidAt:        time.Now().UTC(),
	})
	if err != nil {
		return upstreamError(c, "record payment", err)
	}
	return c.NoContent(http.StatusCreated)
}

// MyOrders handles GET /orders for the signed-in user.
func (h *OrdersHandler) MyOrders(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.API.Orders.ListByEmail(upstream.WithActor(ctx, id.Email), id.Email)
	if err != nil {
		return upstreamError(c, "load orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}
