package router

import (
	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/handler"
	"github.com/styleshoehub/storefront-gateway/internal/roles"
)

// RegisterCustomer registers customer-scoped endpoints under /v1. All
// routes require a session whose resolved role is customer. Customers
// manage their cart, check out, enroll in policies and file claims.
func RegisterCustomer(
	e *echo.Echo,
	cart *handler.CartHandler,
	orders *handler.OrdersHandler,
	apps *handler.ApplicationsHandler,
	claims *handler.ClaimsHandler,
	resolver *roles.Resolver,
) {
	g := e.Group("/v1", guard.Require(guard.Customer, resolver))

	// Cart. Every mutation answers with the refreshed server-side list so
	// the client never has to reconcile local state.
	g.GET("/cart", cart.List)
	g.POST("/cart", cart.Add)
	g.DELETE("/cart/:id", cart.Remove)
	g.DELETE("/cart", cart.Clear)

	// Checkout and payments.
	g.POST("/checkout", orders.Checkout)
	g.POST("/payments", orders.RecordPayment)
	g.GET("/my-orders", orders.MyOrders)

	// Policy enrollment.
	g.POST("/applications", apps.Create)
	g.GET("/my-applications", apps.Mine)

	// Claims. Creation requires a document image; the handler rejects a
	// missing one before any upstream call.
	g.POST("/claims", claims.Create)
	g.GET("/my-claims", claims.Mine)
}
