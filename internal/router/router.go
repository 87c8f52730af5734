package router // package router wires handlers and middleware onto echo

import (
	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/handler"
	"github.com/wizonweb/wizon-server/internal/middleware"
	"github.com/wizonweb/wizon-server/internal/model"
)

// RegisterRoutes registers the routes that never touch the stores: the
// banner at / and the liveness probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
}

// adminGate is the middleware chain for every admin-only route.
func adminGate(tokens middleware.TokenVerifier) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.AdminAuth(tokens),
		middleware.RequireRole(model.RoleAdmin),
	}
}

// RegisterAdmin registers the session endpoints under /api/admin.  Login is
// public; logout and me sit behind the gate.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, s *handler.SystemHandler, tokens middleware.TokenVerifier) {
	e.POST("/api/admin/login", a.Login)

	g := e.Group("/api/admin", adminGate(tokens)...)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me)
	g.GET("/system/status", s.Status)
}
