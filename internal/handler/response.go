package handler // HTTP handlers and the shared JSON envelope

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/service"
)

// every response carries {"success": bool, "message": string, ...}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

func badBody(c echo.Context) error {
	return fail(c, http.StatusBadRequest, "Invalid request body")
}

// serviceError maps store errors onto status codes.  fallback is the message
// used for unexpected failures, which are logged and never echoed back.
func serviceError(c echo.Context, err error, notFound, fallback string) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrInvalidID):
		return fail(c, http.StatusBadRequest, "Invalid ID")
	case errors.Is(err, service.ErrNotFound):
		return fail(c, http.StatusNotFound, notFound)
	default:
		slog.Error(fallback, "method", c.Request().Method, "path", c.Path(), "error", err)
		return fail(c, http.StatusInternalServerError, fallback)
	}
}

// ErrorHandler renders framework errors (unknown route, wrong method,
// oversized body, recovered panics) in the same envelope as the handlers.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if s, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
			msg = s
		}
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = fail(c, status, msg)
	}
	if err != nil {
		slog.Error("write error response", "error", err)
	}
}
