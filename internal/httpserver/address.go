package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/service"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
	"github.com/hoanglamvn01/cosmetic_shop/internal/util"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list_addresses")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	addrs, err := h.Svc.List(ctx, uid)
	if err != nil {
		return httpError(l, "list_addresses_error", err)
	}
	return c.JSON(http.StatusOK, addrs)
}

func (h *AddressHTTP) CreateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.create_address")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_address_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.Create(ctx, uid, req)
	if err != nil {
		return httpError(l, "create_address_error", err)
	}

	l.Info("create_address_success", "address_id", addr.ID)
	return c.JSON(http.StatusCreated, addr)
}

func (h *AddressHTTP) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.update_address")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_address_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.Update(ctx, uid, uint(id), req)
	if err != nil {
		return httpError(l, "update_address_error", err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHTTP) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.delete_address")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(ctx, uid, uint(id)); err != nil {
		return httpError(l, "delete_address_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AddressHTTP) SetDefaultAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.set_default_address")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.SetDefault(ctx, uid, uint(id)); err != nil {
		return httpError(l, "set_default_address_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "default address updated"})
}
