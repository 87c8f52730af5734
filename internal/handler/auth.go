package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/middleware"
	"github.com/wizonweb/wizon-server/internal/utils"
)

// AdminHandler serves the admin session endpoints.
type AdminHandler struct {
	Creds  *utils.AdminCredentials
	Tokens *utils.TokenCodec
}

func NewAdminHandler(creds *utils.AdminCredentials, tokens *utils.TokenCodec) *AdminHandler {
	return &AdminHandler{Creds: creds, Tokens: tokens}
}

// ----- DTOs -----

type loginReq struct {
	Email    *string `json:"email" form:"email"`
	Password *string `json:"password" form:"password"`
}

// sessionCookie carries the attribute set used both to set and to clear the
// session.  Browsers only drop a cookie when these match exactly.
func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// Login checks the submitted pair against the configured admin and sets
// the session cookie.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Email == nil || req.Password == nil {
		return badBody(c)
	}

	if err := h.Creds.Check(*req.Email, *req.Password); err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		slog.Error("admin login", "error", err)
		return fail(c, http.StatusInternalServerError, "Server error")
	}

	tok, err := h.Tokens.Issue(*req.Email)
	if err != nil {
		slog.Error("issue admin token", "error", err)
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	c.SetCookie(sessionCookie(tok.Token, int(h.Tokens.TTL()/time.Second)))

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Admin login successful",
		"expiresAt": tok.Exp,
	})
}

// Logout clears the session cookie.
func (h *AdminHandler) Logout(c echo.Context) error {
	c.SetCookie(sessionCookie("", -1))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged out successfully"})
}

// Me returns the identity attached by the auth gate.
func (h *AdminHandler) Me(c echo.Context) error {
	id, ok := middleware.AdminFrom(c)
	if !ok {
		return fail(c, http.StatusInternalServerError, "Failed to fetch admin session")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "admin": id})
}
