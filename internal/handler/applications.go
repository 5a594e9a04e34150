package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// ApplicationsHandler covers policy enrollment: customers submit and track,
// agents/admins review and assign.
type ApplicationsHandler struct {
	API *upstream.API
}

func NewApplicationsHandler(api *upstream.API) *ApplicationsHandler {
	return &ApplicationsHandler{API: api}
}

type applicationReq struct {
	PolicyID string `json:"policyId" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,e164"`
	Address  string `json:"address" validate:"required"`
}

// Create handles POST /applications for the signed-in customer.
func (h *ApplicationsHandler) Create(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req applicationReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ctx = upstream.WithActor(ctx, id.Email)

	policy, err := h.API.Policies.Get(ctx, req.PolicyID)
	if err != nil {
		return upstreamError(c, "load policy", err)
	}
	err = h.API.Applications.Create(ctx, model.Application{
		PolicyID:    policy.ID,
		PolicyTitle: policy.Title,
		Email:       id.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		Status:      model.ApplicationPending,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return upstreamError(c, "submit application", err)
	}
	return c.NoContent(http.StatusCreated)
}

// Mine handles GET /applications for the signed-in customer.
func (h *ApplicationsHandler) Mine(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	apps, err := h.API.Applications.ListByEmail(upstream.WithActor(ctx, id.Email), id.Email)
	if err != nil {
		return upstreamError(c, "load applications", err)
	}
	return c.JSON(http.StatusOK, apps)
}

// List handles GET /applications/all for the admin dashboard.
func (h *ApplicationsHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	apps, err := h.API.Applications.List(ctx)
	if err != nil {
		return upstreamError(c, "load applications", err)
	}
	return c.JSON(http.StatusOK, apps)
}

// Get handles GET /applications/:id.
func (h *ApplicationsHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	app, err := h.API.Applications.Get(ctx, c.Param("id"))
	if err != nil {
		return upstreamError(c, "load application", err)
	}
	return c.JSON(http.StatusOK, app)
}

type applicationUpdateReq struct {
	Status     string `json:"status" validate:"required,oneof=Pending Approved Rejected"`
	AgentEmail string `json:"agentEmail" validate:"omitempty,email"`
}

// UpdateStatus handles PATCH /applicationUpdate/:id. When an agent is
// attached an assignment record is written too, so the agent's dashboard
// sees the case without a manual step.
func (h *ApplicationsHandler) UpdateStatus(c echo.Context) error {
	var req applicationUpdateReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	appID := c.Param("id")
	if err := h.API.Applications.UpdateStatus(ctx, appID, req.Status, req.AgentEmail); err != nil {
		return upstreamError(c, "update application", err)
	}
	if req.AgentEmail != "" {
		app, err := h.API.Applications.Get(ctx, appID)
		if err == nil {
			if err := h.API.Agents.Assign(ctx, model.AgentRecord{
				AgentEmail:    req.AgentEmail,
				CustomerEmail: app.Email,
				ApplicationID: appID,
				Status:        req.Status,
				AssignedAt:    time.Now().UTC(),
			}); err != nil {
				return upstreamError(c, "assign agent", err)
			}
		}
	}
	return c.NoContent(http.StatusNoContent)
}
