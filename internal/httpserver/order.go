package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/metrics"
	"github.com/hoanglamvn01/cosmetic_shop/internal/service"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
	"github.com/hoanglamvn01/cosmetic_shop/internal/util"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, uid, req)
	if err != nil {
		metrics.RecordOrderOperation("create", false)
		return httpError(l, "create_order_error", err)
	}
	metrics.RecordOrderOperation("create", true)

	l.Info("create_order_success", "order_id", order.ID, "order_code", order.OrderCode)
	return c.JSON(http.StatusCreated, transport.CreateOrderResponse{
		OrderID:   order.ID,
		OrderCode: order.OrderCode,
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Svc.GetOrder(ctx, uid, isAdmin(c), uint(id))
	if err != nil {
		return httpError(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_user_orders")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	target := util.ParseIntDefault(c.Param("userId"), 0)
	if target <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if uint(target) != uid && !isAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListUserOrders(ctx, uint(target), offset, limit)
	if err != nil {
		return httpError(l, "list_user_orders_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": orders,
		"meta": echo.Map{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel_order")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.CancelOrder(ctx, uid, isAdmin(c), uint(id)); err != nil {
		metrics.RecordOrderOperation("cancel", false)
		return httpError(l, "cancel_order_error", err)
	}
	metrics.RecordOrderOperation("cancel", true)

	l.Info("cancel_order_success", "order_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "order cancelled"})
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order_status")

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateStatus(ctx, uint(id), req.Status); err != nil {
		metrics.RecordOrderOperation("update_status", false)
		return httpError(l, "update_order_status_error", err)
	}
	metrics.RecordOrderOperation("update_status", true)

	l.Info("update_order_status_success", "order_id", id, "order_status", req.Status)
	return c.JSON(http.StatusOK, echo.Map{"message": "order status updated"})
}
