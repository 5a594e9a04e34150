package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/cart"
	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// CartHandler exposes the per-user cart. Routes are behind the private
// guard, so an identity is always present; the double-check here only
// covers miswired routes.
type CartHandler struct {
	Store *cart.Store
	API   *upstream.API
}

func NewCartHandler(store *cart.Store, api *upstream.API) *CartHandler {
	return &CartHandler{Store: store, API: api}
}

type cartAddReq struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// List handles GET /cart for the signed-in user.
func (h *CartHandler) List(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Store.Items(upstream.WithActor(ctx, id.Email), *id)
	if err != nil {
		return upstreamError(c, "load cart", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Add handles POST /cart. Size and color must be chosen; an incomplete
// selection is rejected here with no upstream call.
func (h *CartHandler) Add(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req cartAddReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	if err := cart.ValidateSelection(req.Size, req.Color, req.Quantity); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ctx = upstream.WithActor(ctx, id.Email)

	product, err := h.API.Policies.Get(ctx, req.ProductID)
	if err != nil {
		return upstreamError(c, "load product", err)
	}
	items, err := h.Store.Add(ctx, *id, product, req.Size, req.Color, req.Quantity)
	if err != nil {
		switch err {
		case cart.ErrInvalidSelection, cart.ErrEmptyQuantity:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return upstreamError(c, "add to cart", err)
	}
	return c.JSON(http.StatusCreated, items)
}

// Remove handles DELETE /cart/:id and returns the refreshed list.
func (h *CartHandler) Remove(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Store.Remove(upstream.WithActor(ctx, id.Email), *id, c.Param("id"))
	if err != nil {
		return upstreamError(c, "remove from cart", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Store.Clear(upstream.WithActor(ctx, id.Email), *id)
	if err != nil {
		return upstreamError(c, "clear cart", err)
	}
	return c.JSON(http.StatusOK, items)
}
