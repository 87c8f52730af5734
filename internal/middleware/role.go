package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that only lets through requests whose
// context role, as stored by AdminAuth, is one of roles.  Anything else
// gets 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles)) // set of accepted roles
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(string) // missing or non-string counts as no role
			if !ok || !allowed[role] {
				return deny(c, http.StatusForbidden, "Forbidden: Admin access required")
			}
			return next(c)
		}
	}
}
