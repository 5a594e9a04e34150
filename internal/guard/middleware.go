package guard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/roles"
)

// Context keys shared with the session middleware.
const (
	CtxIdentity = "identity"
	CtxRole     = "resolved_role"
)

// IdentityFrom extracts the authenticated identity placed into the context
// by the session middleware, or nil for anonymous requests.
func IdentityFrom(c echo.Context) *model.Identity {
	if id, ok := c.Get(CtxIdentity).(*model.Identity); ok {
		return id
	}
	return nil
}

// RoleFrom returns the role resolved for the current request, if a role
// guard ran.
func RoleFrom(c echo.Context) (model.Role, bool) {
	r, ok := c.Get(CtxRole).(model.Role)
	return r, ok
}

// Require returns middleware enforcing a guard. Denials are uniform: a
// missing session yields 401 carrying the originally requested path under
// "next" so the client can return there after login; an insufficient role
// yields the dedicated 403 forbidden body. A role that cannot be resolved
// leaves the guard in its loading state, which over HTTP is 503: the
// guard refuses to guess.
func Require(g Guard, resolver *roles.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := Session{Resolved: true, Identity: IdentityFrom(c)}
			role := RoleState{}
			if sess.Identity != nil && g.RequiresRole() {
				r, err := resolver.Resolve(c.Request().Context(), sess.Identity.Email)
				if err == nil {
					role = RoleState{Resolved: true, Role: r}
				}
			}
			switch Decide(sess, role, g) {
			case Loading:
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"error": "role resolution unavailable",
				})
			case Denied:
				if sess.Identity == nil {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": "login required",
						"next":  c.Request().URL.Path,
					})
				}
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "forbidden",
					"guard": g.String(),
				})
			}
			if role.Resolved {
				c.Set(CtxRole, role.Role)
			}
			return next(c)
		}
	}
}
