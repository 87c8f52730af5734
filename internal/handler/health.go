package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness probe for load balancers.  It never touches the
// database.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Root answers the bare domain with a short banner.
func Root(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h2>Wizon Mail + Blog Server Running</h2>")
}
