package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// AgentHandler serves the agent dashboard: the customers routed to the
// signed-in agent and the state of those assignments.
type AgentHandler struct {
	API *upstream.API
}

func NewAgentHandler(api *upstream.API) *AgentHandler {
	return &AgentHandler{API: api}
}

// AssignedCustomers handles GET /assigned-customers for the signed-in
// agent.
func (h *AgentHandler) AssignedCustomers(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	recs, err := h.API.Agents.AssignedData(upstream.WithActor(ctx, id.Email), id.Email)
	if err != nil {
		return upstreamError(c, "load assignments", err)
	}
	return c.JSON(http.StatusOK, recs)
}

type assignmentUpdateReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateAssignment handles PATCH /assignments/:id.
func (h *AgentHandler) UpdateAssignment(c echo.Context) error {
	var req assignmentUpdateReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	if err := h.API.Agents.UpdateAssignment(ctx, c.Param("id"), req.Status); err != nil {
		return upstreamError(c, "update assignment", err)
	}
	return c.NoContent(http.StatusNoContent)
}
