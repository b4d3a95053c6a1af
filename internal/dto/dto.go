package dto

import (
	"testbuddy-checkout/internal/model"
	"testbuddy-checkout/internal/service"
	"time"
)

type CheckoutRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	IsGift bool   `json:"is_gift"`
	Mobile string `json:"mobile,omitempty"`
	OTP    string `json:"otp,omitempty"`
}

type CheckoutResponse struct {
	SessionID string                 `json:"session_id"`
	VerifyURL string                 `json:"verify_url"`
	ExpiresAt time.Time              `json:"expires_at"`
	Options   *model.CheckoutOptions `json:"options"`
	Notices   []service.Notice       `json:"notices"`
}

type VerifyRequest struct {
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type VerifyResponse struct {
	Message string           `json:"message"`
	Notices []service.Notice `json:"notices"`
}

type ErrorResponse struct {
	Error   string           `json:"error"`
	Notices []service.Notice `json:"notices"`
}
