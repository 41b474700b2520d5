package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/service"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
	"github.com/hoanglamvn01/cosmetic_shop/internal/util"
)

type ContentHTTP struct {
	Svc *service.ContentService
}

func (h *ContentHTTP) ListPosts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.list_posts")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, posts, err := h.Svc.ListPosts(ctx, offset, limit)
	if err != nil {
		return httpError(l, "list_posts_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": posts,
		"meta": echo.Map{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *ContentHTTP) GetPost(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.get_post")

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	post, err := h.Svc.GetPost(ctx, uint(id))
	if err != nil {
		return httpError(l, "get_post_error", err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *ContentHTTP) SubmitContact(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.submit_contact")

	var req transport.ContactRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("submit_contact_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	form, err := h.Svc.SubmitContact(ctx, req)
	if err != nil {
		return httpError(l, "submit_contact_error", err)
	}

	l.Info("submit_contact_success", "contact_id", form.ID)
	return c.JSON(http.StatusCreated, form)
}

func (h *ContentHTTP) ListContacts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.list_contacts")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, contacts, err := h.Svc.ListContacts(ctx, offset, limit)
	if err != nil {
		return httpError(l, "list_contacts_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": contacts,
		"meta": echo.Map{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}
