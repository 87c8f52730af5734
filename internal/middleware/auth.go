package middleware // request gates shared by the route groups

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/model"
	"github.com/wizonweb/wizon-server/internal/utils"
)

// AdminCookieName is the session cookie issued at login.
const AdminCookieName = "admin_token"

// Context keys set by AdminAuth.
const (
	ContextEmail = "admin_email"
	ContextRole  = "role"
)

// TokenVerifier checks a raw session token.
type TokenVerifier interface {
	Verify(raw string) (model.AdminIdentity, error)
}

// AdminAuth returns an Echo middleware that reads the admin session cookie,
// verifies it and stores the email and role in the request context.  Only
// the admin role passes; every other outcome ends the request here with the
// JSON envelope the dashboard expects.
func AdminAuth(codec TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AdminCookieName) // http.ErrNoCookie when absent
			if err != nil || cookie.Value == "" {
				return deny(c, http.StatusUnauthorized, "Unauthorized: No token provided")
			}

			id, err := codec.Verify(cookie.Value)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return deny(c, http.StatusUnauthorized, "Session expired, please login again")
			case err != nil:
				return deny(c, http.StatusUnauthorized, "Invalid or expired session")
			}

			c.Set(ContextEmail, id.Email)
			c.Set(ContextRole, id.Role)
			return next(c)
		}
	}
}

func deny(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}
