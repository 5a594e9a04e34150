package router

import (
	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/handler"
	"github.com/styleshoehub/storefront-gateway/internal/roles"
)

// RegisterAgent registers agent-scoped endpoints under /v1. Case review
// routes accept admins too, since admins can step in on any claim or
// application; the assignment feed is strictly per-agent.
func RegisterAgent(
	e *echo.Echo,
	agent *handler.AgentHandler,
	apps *handler.ApplicationsHandler,
	claims *handler.ClaimsHandler,
	blogs *handler.BlogsHandler,
	resolver *roles.Resolver,
) {
	g := e.Group("/v1", guard.Require(guard.Agent, resolver))

	// The assignment feed is keyed by the caller's own email, so only the
	// agent role makes sense here.
	g.GET("/assigned-customers", agent.AssignedCustomers)
	g.GET("/assigned-claims", claims.Assigned)

	// Review surfaces shared with admins.
	shared := e.Group("/v1", guard.Require(guard.AdminAgent, resolver))
	shared.PATCH("/assignments/:id", agent.UpdateAssignment)
	shared.PATCH("/claims/:id/status", claims.UpdateStatus)
	shared.PATCH("/applicationUpdate/:id", apps.UpdateStatus)

	// Blog authoring. Ownership is enforced in the handler: agents may
	// touch only their own posts, admins may touch any.
	shared.POST("/blogs", blogs.Create)
	shared.GET("/my-blogs", blogs.Mine)
	shared.PATCH("/blogs/:id", blogs.Update)
	shared.DELETE("/blogs/:id", blogs.Delete)
}
