package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// StorefrontHandler serves the anonymous browse surface: catalog, blogs,
// reviews, agent directory, newsletter.
type StorefrontHandler struct {
	API *upstream.API
}

func NewStorefrontHandler(api *upstream.API) *StorefrontHandler {
	return &StorefrontHandler{API: api}
}

// ListPolicies handles GET /policies with optional page/category query.
func (h *StorefrontHandler) ListPolicies(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	policies, err := h.API.Policies.List(ctx, c.QueryParam("page"), c.QueryParam("category"))
	if err != nil {
		return upstreamError(c, "load policies", err)
	}
	return c.JSON(http.StatusOK, policies)
}

// GetPolicy handles GET /policies/:id.
func (h *StorefrontHandler) GetPolicy(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.API.Policies.Get(ctx, c.Param("id"))
	if err != nil {
		return upstreamError(c, "load policy", err)
	}
	return c.JSON(http.StatusOK, p)
}

// ListBlogs handles GET /blogs.
func (h *StorefrontHandler) ListBlogs(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	blogs, err := h.API.Blogs.List(ctx)
	if err != nil {
		return upstreamError(c, "load blogs", err)
	}
	return c.JSON(http.StatusOK, blogs)
}

// VisitBlog handles PATCH /blogs/:id/visit; the bump is fire-and-forget
// from the page's point of view but errors still surface.
func (h *StorefrontHandler) VisitBlog(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.API.Blogs.RecordVisit(ctx, c.Param("id")); err != nil {
		return upstreamError(c, "record visit", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListReviews handles GET /reviews (already sorted newest-first).
func (h *StorefrontHandler) ListReviews(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	revs, err := h.API.Reviews.List(ctx)
	if err != nil {
		return upstreamError(c, "load reviews", err)
	}
	return c.JSON(http.StatusOK, revs)
}

type reviewReq struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// CreateReview handles POST /reviews for signed-in users.
func (h *StorefrontHandler) CreateReview(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req reviewReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.API.Reviews.Create(upstream.WithActor(ctx, id.Email), model.Review{
		Email:     id.Email,
		Name:      id.DisplayName,
		PhotoURL:  id.PhotoURL,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return upstreamError(c, "submit review", err)
	}
	return c.NoContent(http.StatusCreated)
}

// ListAgents handles GET /agents.
func (h *StorefrontHandler) ListAgents(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	agents, err := h.API.Agents.List(ctx)
	if err != nil {
		return upstreamError(c, "load agents", err)
	}
	return c.JSON(http.StatusOK, agents)
}

type newsletterReq struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// SubscribeNewsletter handles POST /subscribe-newsletter.
func (h *StorefrontHandler) SubscribeNewsletter(c echo.Context) error {
	var req newsletterReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.API.Reviews.SubscribeNewsletter(ctx, req.Email, req.Name); err != nil {
		return upstreamError(c, "subscribe", err)
	}
	return c.NoContent(http.StatusCreated)
}

// reqCtx bounds every upstream call made on behalf of one request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 10*time.Second)
}
