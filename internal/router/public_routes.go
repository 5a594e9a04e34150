package router

import (
	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/handler"
)

// RegisterPublic registers the anonymous browse surface: catalog, blogs,
// reviews, the agent directory and the newsletter. The pageCache middleware
// is applied only to the GET endpoints whose payload is the same for every
// visitor; passing nil disables it.
func RegisterPublic(e *echo.Echo, s *handler.StorefrontHandler, pageCache echo.MiddlewareFunc) {
	cached := func(h echo.HandlerFunc) echo.HandlerFunc {
		if pageCache == nil {
			return h
		}
		return pageCache(h)
	}

	e.GET("/v1/policies", cached(s.ListPolicies))
	e.GET("/v1/policies/:id", cached(s.GetPolicy))
	e.GET("/v1/blogs", cached(s.ListBlogs))
	e.GET("/v1/reviews", cached(s.ListReviews))
	e.GET("/v1/agents", cached(s.ListAgents))

	// The visit counter is a write, so it bypasses the page cache. The
	// blog list itself keeps serving from cache until its TTL expires; a
	// slightly stale visit count is acceptable.
	e.PATCH("/v1/blogs/:id/visit", s.VisitBlog)

	// Review creation requires a session; the handler checks the identity
	// itself so the anonymous list route and the authenticated create
	// route can share one group.
	e.POST("/v1/reviews", s.CreateReview)
	e.POST("/v1/subscribe-newsletter", s.SubscribeNewsletter)
}
