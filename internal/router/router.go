package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/handler"
	"github.com/styleshoehub/storefront-gateway/internal/roles"
)

// RegisterRoutes registers routes that need no session at all. Currently
// it exposes only the health check, used by load balancers to verify the
// gateway is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session lifecycle endpoints and the small set
// of endpoints that need only a valid session, not a particular role.
// Unauthenticated operations live under /v1/auth; protected endpoints live
// under /v1 behind the private guard.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, up *handler.UploadHandler, resolver *roles.Resolver) {
	// Operations that create or exchange tokens need no existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/google", a.GoogleLogin)
	// Refresh rotates the refresh token; refresh-access issues a new access
	// token while leaving the refresh token as it is.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts the refresh token from the cookie or the body and
	// revokes every token for the account, so it needs no access token.
	g.POST("/logout", a.Logout)

	// Any signed-in user, whatever their role, can read their own session
	// state, update their profile and push an image through the host proxy.
	priv := e.Group("/v1", guard.Require(guard.Private, resolver))
	priv.GET("/me", a.Me)
	priv.PATCH("/profile", a.UpdateProfile)
	priv.POST("/upload-image", up.Upload)
}
