package router

import (
	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/handler"
	"github.com/styleshoehub/storefront-gateway/internal/roles"
)

// RegisterAdmin registers admin-scoped endpoints under /v1. All routes
// require a session whose resolved role is admin.
func RegisterAdmin(
	e *echo.Echo,
	admin *handler.AdminHandler,
	apps *handler.ApplicationsHandler,
	claims *handler.ClaimsHandler,
	resolver *roles.Resolver,
) {
	g := e.Group("/v1", guard.Require(guard.Admin, resolver))

	// User management. A role change invalidates the cached users list and
	// the target's cached role, so the promotion takes effect on the
	// target's very next request.
	g.GET("/users", admin.ListUsers)
	g.PATCH("/user/role/update/:email", admin.UpdateRole)
	g.DELETE("/user/:id", admin.DeleteUser)

	// Catalog management.
	g.POST("/policies", admin.CreatePolicy)
	g.PATCH("/policies/:id", admin.UpdatePolicy)

	// Oversight of enrollment and claims.
	g.GET("/applications/all", apps.List)
	g.GET("/applications/:id", apps.Get)
	g.GET("/claims/all", claims.List)

	// Money and fulfilment.
	g.GET("/payments", admin.ListPayments)
	g.GET("/orders/all", admin.ListOrders)
	g.PATCH("/orders/:id", admin.UpdateOrderStatus)
	g.DELETE("/orders/:id", admin.DeleteOrder)

	// Records left over from the site's food-delivery era. Read and delete
	// only; nothing creates these anymore.
	g.GET("/foodorders", admin.ListFoodOrders)
	g.DELETE("/foodorders/:id", admin.DeleteFoodOrder)
}
