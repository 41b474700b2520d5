package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/service"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
	"github.com/hoanglamvn01/cosmetic_shop/internal/util"
)

type DiscountHTTP struct {
	Svc *service.DiscountService
}

func (h *DiscountHTTP) ApplyDiscount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.apply_discount")

	var req transport.ApplyDiscountRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("apply_discount_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.Apply(ctx, req.Code, req.OrderValue)
	if err != nil {
		return httpError(l, "apply_discount_error", err)
	}

	l.Info("apply_discount_success", "code", resp.Code)
	return c.JSON(http.StatusOK, resp)
}

func (h *DiscountHTTP) ListDiscounts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.list_discounts")

	codes, err := h.Svc.List(ctx)
	if err != nil {
		return httpError(l, "list_discounts_error", err)
	}
	return c.JSON(http.StatusOK, codes)
}

func (h *DiscountHTTP) CreateDiscount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.create_discount")

	var req transport.CreateDiscountRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_discount_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	dc, err := h.Svc.Create(ctx, req)
	if err != nil {
		return httpError(l, "create_discount_error", err)
	}

	l.Info("create_discount_success", "code", dc.Code)
	return c.JSON(http.StatusCreated, dc)
}

func (h *DiscountHTTP) DeleteDiscount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.delete_discount")

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(ctx, uint(id)); err != nil {
		return httpError(l, "delete_discount_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
