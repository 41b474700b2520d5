package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/metrics"
	"github.com/hoanglamvn01/cosmetic_shop/internal/payment"
	"github.com/hoanglamvn01/cosmetic_shop/internal/service"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) CreateVNPayOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.create_vnpay_order")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_vnpay_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.CreateVNPayOrder(ctx, uid, req, c.RealIP())
	if err != nil {
		metrics.RecordOrderOperation("create_vnpay", false)
		return httpError(l, "create_vnpay_order_error", err)
	}
	metrics.RecordOrderOperation("create_vnpay", true)

	l.Info("create_vnpay_order_success", "order_code", resp.OrderCode)
	return c.JSON(http.StatusCreated, resp)
}

func (h *PaymentHTTP) CreateMoMoOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.create_momo_order")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_momo_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.CreateMoMoOrder(ctx, uid, req)
	if err != nil {
		metrics.RecordOrderOperation("create_momo", false)
		return httpError(l, "create_momo_order_error", err)
	}
	metrics.RecordOrderOperation("create_momo", true)

	l.Info("create_momo_order_success", "order_code", resp.OrderCode)
	return c.JSON(http.StatusCreated, resp)
}

// VNPayReturn is the browser redirect target after the hosted payment page.
func (h *PaymentHTTP) VNPayReturn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.vnpay_return")

	applied, err := h.Svc.HandleVNPayCallback(ctx, c.QueryParams())
	if err != nil {
		return httpError(l, "vnpay_return_error", err)
	}

	orderCode := c.QueryParam("vnp_TxnRef")
	if !applied && c.QueryParam("vnp_ResponseCode") != "00" {
		l.Warn("vnpay_return_failed", "order_code", orderCode, "response_code", c.QueryParam("vnp_ResponseCode"))
		return c.JSON(http.StatusOK, echo.Map{"status": "failed", "order_code": orderCode})
	}

	l.Info("vnpay_return_success", "order_code", orderCode, "applied", applied)
	return c.JSON(http.StatusOK, echo.Map{"status": "paid", "order_code": orderCode})
}

// VNPayIPN answers the server-to-server notification with the response codes
// VNPay expects: 00 confirmed, 01 order not found, 02 already confirmed,
// 97 invalid signature.
func (h *PaymentHTTP) VNPayIPN(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.vnpay_ipn")

	applied, err := h.Svc.HandleVNPayCallback(ctx, c.QueryParams())
	switch {
	case errors.Is(err, service.ErrBadSignature):
		l.Warn("vnpay_ipn_error", "reason", "invalid signature")
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "97", "Message": "Invalid Signature"})
	case errors.Is(err, service.ErrNotFound):
		l.Warn("vnpay_ipn_error", "reason", "order not found")
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "01", "Message": "Order Not Found"})
	case errors.Is(err, service.ErrValidation):
		l.Warn("vnpay_ipn_error", "reason", "invalid params", "error", err)
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "99", "Message": "Invalid Params"})
	case err != nil:
		l.Error("vnpay_ipn_error", "error", err)
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "99", "Message": "Unknown Error"})
	}

	if !applied && c.QueryParam("vnp_ResponseCode") == "00" {
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "02", "Message": "Order Already Confirmed"})
	}

	l.Info("vnpay_ipn_success", "order_code", c.QueryParam("vnp_TxnRef"), "applied", applied)
	return c.JSON(http.StatusOK, echo.Map{"RspCode": "00", "Message": "Confirm Success"})
}

// MoMoIPN acknowledges MoMo notifications; MoMo retries on any non-204.
func (h *PaymentHTTP) MoMoIPN(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.momo_ipn")

	var n payment.IPNRequest
	if err := c.Bind(&n); err != nil {
		l.Warn("momo_ipn_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	applied, err := h.Svc.HandleMoMoIPN(ctx, &n)
	if err != nil {
		return httpError(l, "momo_ipn_error", err)
	}

	l.Info("momo_ipn_success", "order_code", n.OrderID, "applied", applied)
	return c.NoContent(http.StatusNoContent)
}
