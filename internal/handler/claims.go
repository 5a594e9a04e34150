package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/imagehost"
	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/queue"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// ClaimsHandler covers claim submission (customer) and review (agent).
type ClaimsHandler struct {
	API       *upstream.API
	Images    *imagehost.Client
	Publisher Publisher
	Log       zerolog.Logger
}

func NewClaimsHandler(api *upstream.API, images *imagehost.Client, pub Publisher, log zerolog.Logger) *ClaimsHandler {
	return &ClaimsHandler{API: api, Images: images, Publisher: pub, Log: log.With().Str("component", "claims").Logger()}
}

type claimReq struct {
	PolicyID      string `json:"policyId" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
	DocumentImage string `json:"documentImage"` // base64; required, checked below
}

// Create handles POST /claimRequests. A claim without a supporting
// document is rejected before any upstream or image-host call is made.
func (h *ClaimsHandler) Create(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req claimReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	if strings.TrimSpace(req.DocumentImage) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": map[string]string{"DocumentImage": "required"},
		})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ctx = upstream.WithActor(ctx, id.Email)

	policy, err := h.API.Policies.Get(ctx, req.PolicyID)
	if err != nil {
		return upstreamError(c, "load policy", err)
	}
	docURL, err := h.Images.Upload(ctx, req.DocumentImage)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "document upload failed"})
	}
	claim := model.Claim{
		PolicyID:    policy.ID,
		PolicyTitle: policy.Title,
		Email:       id.Email,
		Reason:      req.Reason,
		DocumentURL: docURL,
		Status:      "Pending",
		SubmittedAt: time.Now().UTC(),
	}
	if err := h.API.Claims.Create(ctx, claim); err != nil {
		return upstreamError(c, "submit claim", err)
	}

	if h.Publisher != nil {
		ev := queue.ClaimSubmittedEvent{
			EventID:     uuid.NewString(),
			Email:       id.Email,
			PolicyTitle: policy.Title,
			SubmittedAt: claim.SubmittedAt.Format(time.RFC3339),
		}
		if err := h.Publisher.Publish(ctx, ev); err != nil {
			h.Log.Warn().Err(err).Str("email", id.Email).Msg("claim event publish failed")
		}
	}
	return c.NoContent(http.StatusCreated)
}

// Mine handles GET /claims/user for the signed-in customer.
func (h *ClaimsHandler) Mine(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	claims, err := h.API.Claims.ListByUser(upstream.WithActor(ctx, id.Email), id.Email)
	if err != nil {
		return upstreamError(c, "load claims", err)
	}
	return c.JSON(http.StatusOK, claims)
}

// Assigned handles GET /claims/agent for the signed-in agent.
func (h *ClaimsHandler) Assigned(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	claims, err := h.API.Claims.ListByAgent(upstream.WithActor(ctx, id.Email), id.Email)
	if err != nil {
		return upstreamError(c, "load claims", err)
	}
	return c.JSON(http.StatusOK, claims)
}

// List handles GET /claimRequests for the admin dashboard.
func (h *ClaimsHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	claims, err := h.API.Claims.List(ctx)
	if err != nil {
		return upstreamError(c, "load claims", err)
	}
	return c.JSON(http.StatusOK, claims)
}

type claimStatusReq struct {
	Status string `json:"status" validate:"required,oneof=Pending Approved Rejected"`
}

// UpdateStatus handles PATCH /claims/status/:id, the reviewing agent's
// verdict.
func (h *ClaimsHandler) UpdateStatus(c echo.Context) error {
	var req claimStatusReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if id := guard.IdentityFrom(c); id != nil {
		ctx = upstream.WithActor(ctx, id.Email)
	}

	if err := h.API.Claims.UpdateStatus(ctx, c.Param("id"), req.Status); err != nil {
		return upstreamError(c, "update claim", err)
	}
	return c.NoContent(http.StatusNoContent)
}
