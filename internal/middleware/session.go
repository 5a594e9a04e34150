package middleware // middleware provides shared request processing for handlers

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/auth"
	"github.com/styleshoehub/storefront-gateway/internal/guard"
)

// SessionCookie is the cookie the gateway sets at sign-in and reads on
// every request.
const SessionCookie = "access_token"

// SessionAuth resolves the session before any guard runs. It accepts the
// access token either as the session cookie or as a Bearer header, verifies
// it and stores the identity in the context. Anonymous requests pass
// through with no identity; denial is the guards' job, not this
// middleware's.
func SessionAuth(sessions *auth.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
				raw = ck.Value
			} else if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw != "" {
				if id, err := sessions.VerifyAccess(raw); err == nil {
					c.Set(guard.CtxIdentity, &id)
				}
				// An expired or forged token is treated the same as no
				// token: the request proceeds anonymously.
			}
			return next(c)
		}
	}
}
