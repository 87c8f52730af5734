package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/service"
)

const dbTimeout = 5 * time.Second

// BlogHandler exposes the blog store over HTTP.  Public routes only ever
// see Published blogs; the admin routes see everything.
type BlogHandler struct {
	Blogs *service.BlogService
}

func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{Blogs: blogs}
}

// Create handles POST /api/blogs.
func (h *BlogHandler) Create(c echo.Context) error {
	var in service.BlogInput
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Blogs.Create(ctx, in)
	if err != nil {
		return serviceError(c, err, "Blog not found.", "Internal server error while creating blog.")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Blog created successfully.", "blog": b})
}

// ListPublic handles GET /api/blogs.
func (h *BlogHandler) ListPublic(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	blogs, err := h.Blogs.ListPublic(ctx)
	if err != nil {
		return serviceError(c, err, "", "Failed to fetch blogs.")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(blogs), "blogs": blogs})
}

// ListAll handles GET /api/admin/blogs, drafts included.
func (h *BlogHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	blogs, err := h.Blogs.ListAll(ctx)
	if err != nil {
		return serviceError(c, err, "", "Failed to fetch blogs.")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(blogs), "blogs": blogs})
}

// GetPublic handles GET /api/blogs/:id.  Drafts answer 404.
func (h *BlogHandler) GetPublic(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Blogs.GetPublicByID(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err, "Blog not found.", "Failed to fetch blog.")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "blog": b})
}

// GetAny handles GET /api/admin/blogs/:id.
func (h *BlogHandler) GetAny(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Blogs.GetAnyByID(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err, "Blog not found.", "Failed to fetch blog.")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "blog": b})
}

// Update handles PATCH /api/blogs/:id.  Fields outside the patch struct are
// ignored.
func (h *BlogHandler) Update(c echo.Context) error {
	var p service.BlogPatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Blogs.Update(ctx, c.Param("id"), p)
	if err != nil {
		return serviceError(c, err, "Blog not found.", "Failed to update blog.")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Blog updated successfully.", "blog": b})
}

// Delete handles DELETE /api/blogs/:id.  The row is removed for good.
func (h *BlogHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Blogs.Delete(ctx, c.Param("id")); err != nil {
		return serviceError(c, err, "Blog not found.", "Failed to delete blog.")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Blog deleted successfully."})
}
