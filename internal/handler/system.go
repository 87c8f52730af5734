package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/system"
)

// SystemHandler serves the dashboard health card.
type SystemHandler struct {
	Reader *system.Reader
}

func NewSystemHandler(r *system.Reader) *SystemHandler {
	return &SystemHandler{Reader: r}
}

type statusResp struct {
	Success bool `json:"success"`
	system.Snapshot
}

// Status handles GET /api/admin/system/status.
func (h *SystemHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	snap, err := h.Reader.Snapshot(ctx)
	if err != nil {
		slog.Error("system snapshot", "error", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch system status")
	}
	return c.JSON(http.StatusOK, statusResp{Success: true, Snapshot: snap})
}
