package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/otp"
	"github.com/hoanglamvn01/cosmetic_shop/internal/service"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httpError(l, "register_error", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) RequestOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.request_otp")

	var req transport.OTPRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("request_otp_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Purpose == "" {
		req.Purpose = otp.PurposeVerify
	}

	if err := h.Svc.RequestOTP(ctx, req.Email, req.Purpose); err != nil {
		return httpError(l, "request_otp_error", err)
	}

	l.Info("request_otp_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "otp sent"})
}

func (h *AuthHTTP) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.verify_otp")

	var req transport.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_otp_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.VerifyOTP(ctx, req.Email, req.Code); err != nil {
		return httpError(l, "verify_otp_error", err)
	}

	l.Info("verify_otp_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "account verified"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(l, "login_error", err)
	}

	c.SetCookie(createCookie("accessToken", result.AccessToken, "/", result.Expires))

	l.Info("login_success", "user_id", result.User.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken: result.AccessToken,
		IsAdmin:     result.IsAdmin,
	})
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.reset_password")

	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("reset_password_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResetPassword(ctx, req); err != nil {
		return httpError(l, "reset_password_error", err)
	}

	l.Info("reset_password_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

func (h *AuthHTTP) GoogleLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.google_login")

	var req transport.GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("google_login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.GoogleLogin(ctx, req.IDToken)
	if err != nil {
		return httpError(l, "google_login_error", err)
	}

	c.SetCookie(createCookie("accessToken", result.AccessToken, "/", result.Expires))

	l.Info("google_login_success", "user_id", result.User.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken: result.AccessToken,
		IsAdmin:     result.IsAdmin,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(createCookie("accessToken", "", "/", expired))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
