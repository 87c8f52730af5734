package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/service"
)

// submissions wait on the SMTP relay, so they get a longer budget
const submitTimeout = 30 * time.Second

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	Contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{Contacts: contacts}
}

// Submit handles POST /send-mail and POST /api/contacts.
func (h *ContactHandler) Submit(c echo.Context) error {
	var in service.ContactInput
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), submitTimeout)
	defer cancel()

	ct, err := h.Contacts.Create(ctx, in)
	if errors.Is(err, service.ErrMailDelivery) {
		return fail(c, http.StatusInternalServerError, "Failed to send mail")
	}
	if err != nil {
		return serviceError(c, err, "", "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Mail sent successfully", "contactsId": ct.ID})
}

// List handles GET /api/admin/contacts, newest first.
func (h *ContactHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	contacts, err := h.Contacts.ListAll(ctx)
	if err != nil {
		return serviceError(c, err, "", "Failed to fetch contacts")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": contacts})
}

// Get handles GET /api/admin/contacts/:id.
func (h *ContactHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ct, err := h.Contacts.GetByID(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err, "Contact not found", "Failed to fetch contact")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": ct})
}

// MarkSeen handles PATCH /api/admin/contacts/:id/seen.
func (h *ContactHandler) MarkSeen(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ct, err := h.Contacts.MarkSeen(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err, "Contact not found", "Failed to update contact")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Contact marked as seen", "data": ct})
}

// Total handles GET /api/admin/contacts/total.
func (h *ContactHandler) Total(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	total, err := h.Contacts.CountTotal(ctx)
	if err != nil {
		return serviceError(c, err, "", "Failed to fetch total contacts")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "total": total})
}

// Stats handles GET /api/admin/contacts/stats.
func (h *ContactHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Contacts.Stats(ctx)
	if err != nil {
		return serviceError(c, err, "", "Failed to fetch contact stats")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "total": s.Total, "seen": s.Seen, "unseen": s.Unseen})
}
