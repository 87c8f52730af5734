package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/handler"
	"github.com/wizonweb/wizon-server/internal/middleware"
)

// RegisterBlogs registers public blog reads, wrapped by the response cache,
// and the admin-gated writes.  Admin reads that include drafts live under
// /api/admin/blogs so they never share cache keys with the public ones.
func RegisterBlogs(e *echo.Echo, h *handler.BlogHandler, cache *middleware.BlogCache, tokens middleware.TokenVerifier) {
	pub := e.Group("/api/blogs")
	pub.GET("", h.ListPublic, cache.Middleware())
	pub.GET("/:id", h.GetPublic, cache.Middleware())

	gate := adminGate(tokens)
	pub.POST("", h.Create, gate...)
	pub.PATCH("/:id", h.Update, gate...)
	pub.DELETE("/:id", h.Delete, gate...)

	admin := e.Group("/api/admin/blogs", gate...)
	admin.GET("", h.ListAll)
	admin.GET("/:id", h.GetAny)
}
