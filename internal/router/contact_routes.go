package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/handler"
	"github.com/wizonweb/wizon-server/internal/middleware"
)

// RegisterContacts registers the public form endpoints and the admin inbox.
// /send-mail is the path the marketing site posts to; /api/contacts is the
// same handler under the API prefix.
func RegisterContacts(e *echo.Echo, h *handler.ContactHandler, tokens middleware.TokenVerifier) {
	e.POST("/send-mail", h.Submit)
	e.POST("/api/contacts", h.Submit)

	g := e.Group("/api/admin/contacts", adminGate(tokens)...)
	g.GET("", h.List)
	g.GET("/total", h.Total)
	g.GET("/stats", h.Stats)
	g.GET("/:id", h.Get)
	g.PATCH("/:id/seen", h.MarkSeen)
}
