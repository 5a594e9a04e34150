package handler

import (
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

// AdminHandler is the admin dashboard surface: user management, catalog
// management, payments, orders, legacy food orders.
type AdminHandler struct {
	API       *upstream.API
	Publisher Publisher
	Log       zerolog.Logger
}

func NewAdminHandler(api *upstream.API, pub Publisher, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{API: api, Publisher: pub, Log: log.With().Str("component", "admin").Logger()}
}

// ListUsers handles GET /users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.API.Users.List(ctx)
	if err != nil {
		return upstreamError(c, "load users", err)
	}
	return c.JSON(http.StatusOK, users)
}

type roleUpdateReq struct {
	Role string `json:"role" validate:"required,oneof=admin agent customer"`
}

// UpdateRole handles PATCH /user/role/update/:email. The invalidation map
// drops both the users list and the target's cached role, so the change is
// visible to the target's own open session on its next request.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req roleUpdateReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	email := c.Param("email")

	ctx, cancel := reqCtx(c)
	defer cancel()
	admin := guard.IdentityFrom(c)
	if admin != nil {
		ctx = upstream.WithActor(ctx, admin.Email)
	}

	if err := h.API.Users.UpdateRole(ctx, email, role); err != nil {
		return upstreamError(c, "update role", err)
	}

	if h.Publisher != nil {
		by := ""
		if admin != nil {
			by = admin.Email
		}
		ev := queue.RoleChangedEvent{
			EventID:   uuid.NewString(),
			Email:     email,
			NewRole:   role.String(),
			ChangedBy: by,
			ChangedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publisher.Publish(ctx, ev); err != nil {
			h.Log.Warn().Err(err).Str("email", email).Msg("role event publish failed")
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser handles DELETE /user/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	if err := h.API.Users.Delete(ctx, c.Param("id")); err != nil {
		return upstreamError(c, "delete user", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type policyReq struct {
	Title       string   `json:"title" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	CoverageMax float64  `json:"coverageMax"`
	TermYears   int      `json:"termYears"`
}

// CreatePolicy handles POST /policies.
func (h *AdminHandler) CreatePolicy(c echo.Context) error {
	var req policyReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	err := h.API.Policies.Create(ctx, model.Policy{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		CoverageMax: req.CoverageMax,
		TermYears:   req.TermYears,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return upstreamError(c, "create policy", err)
	}
	return c.NoContent(http.StatusCreated)
}

// UpdatePolicy handles PATCH /policies/:id.
func (h *AdminHandler) UpdatePolicy(c echo.Context) error {
	var req policyReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	err := h.API.Policies.Update(ctx, c.Param("id"), model.Policy{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		CoverageMax: req.CoverageMax,
		TermYears:   req.TermYears,
	})
	if err != nil {
		return upstreamError(c, "update policy", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPayments handles GET /payments.
func (h *AdminHandler) ListPayments(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	payments, err := h.API.Payments.List(ctx)
	if err != nil {
		return upstreamError(c, "load payments", err)
	}
	return c.JSON(http.StatusOK, payments)
}

// ListOrders handles GET /orders/all.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.API.Orders.List(ctx)
	if err != nil {
		return upstreamError(c, "load orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

type orderStatusReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus handles PATCH /orders/:id.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req orderStatusReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	if err := h.API.Orders.UpdateStatus(ctx, c.Param("id"), req.Status); err != nil {
		return upstreamError(c, "update order", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /orders/:id.
func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	if err := h.API.Orders.Delete(ctx, c.Param("id")); err != nil {
		return upstreamError(c, "delete order", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFoodOrders handles GET /foodorders (legacy records).
func (h *AdminHandler) ListFoodOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.API.Orders.FoodOrders(ctx)
	if err != nil {
		return upstreamError(c, "load food orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

// DeleteFoodOrder handles DELETE /foodorders/:id.
func (h *AdminHandler) DeleteFoodOrder(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	if err := h.API.Orders.DeleteFoodOrder(ctx, c.Param("id")); err != nil {
		return upstreamError(c, "delete food order", err)
	}
	return c.NoContent(http.StatusNoContent)
}
