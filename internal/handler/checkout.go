package handler

import (
	"errors"
	"net/http"
	"strings"
	"testbuddy-checkout/internal/dto"
	"testbuddy-checkout/internal/model"
	"testbuddy-checkout/internal/sdk"
	"testbuddy-checkout/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	loader          sdk.Loader
	scriptURL       string
	baseURL         string
}

// NewCheckoutHandler builds the checkout handlers. An empty baseURL yields a
// relative verify_url.
func NewCheckoutHandler(checkoutService service.CheckoutService, loader sdk.Loader, scriptURL, baseURL string) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		loader:          loader,
		scriptURL:       scriptURL,
		baseURL:         strings.TrimRight(baseURL, "/"),
	}
}

func (h *CheckoutHandler) Begin(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	form := &model.FormState{
		Name:   req.Name,
		Email:  req.Email,
		IsGift: req.IsGift,
		Mobile: req.Mobile,
		OTP:    req.OTP,
	}

	var notices service.Notices
	checkout, err := h.checkoutService.Begin(ctx, form, &notices)
	if err != nil {
		return c.JSON(statusFor(err), &dto.ErrorResponse{
			Error:   err.Error(),
			Notices: notices.List(),
		})
	}

	return c.JSON(http.StatusOK, &dto.CheckoutResponse{
		SessionID: checkout.SessionID,
		VerifyURL: h.baseURL + c.Echo().Reverse("checkout.verify", checkout.SessionID),
		ExpiresAt: checkout.ExpiresAt,
		Options:   checkout.Options,
		Notices:   notices.List(),
	})
}

func (h *CheckoutHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.Param("id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session id")
	}

	var req dto.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	var notices service.Notices
	res, err := h.checkoutService.Complete(ctx, sessionID, &model.PaymentResult{
		PaymentID: req.RazorpayPaymentID,
		OrderID:   req.RazorpayOrderID,
		Signature: req.RazorpaySignature,
	}, &notices)
	if err != nil {
		return c.JSON(statusFor(err), &dto.ErrorResponse{
			Error:   err.Error(),
			Notices: notices.List(),
		})
	}

	return c.JSON(http.StatusOK, &dto.VerifyResponse{
		Message: res.Message,
		Notices: notices.List(),
	})
}

// Script serves the cached checkout script, loading it on first use.
func (h *CheckoutHandler) Script(c echo.Context) error {
	if !h.loader.Load(c.Request().Context(), h.scriptURL) {
		return c.String(http.StatusServiceUnavailable, "checkout script unavailable")
	}

	body, _ := h.loader.Script(h.scriptURL)
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPaymentResult):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSignatureMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSDKUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrNoToken), errors.Is(err, service.ErrPaymentInit),
		errors.Is(err, service.ErrVerification):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
