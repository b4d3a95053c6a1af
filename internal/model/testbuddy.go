package model

import "github.com/shopspring/decimal"

type VerifyOTPRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

type VerifyOTPResponse struct {
	Token string `json:"token"`
}

type PaymentKeyResponse struct {
	Key string `json:"key"`
}

type CreateOrderRequest struct {
	PackageID   string `json:"packageId"`
	PricingID   string `json:"pricingId"`
	FinalAmount string `json:"finalAmount"`
	CouponCode  string `json:"couponCode"`
}

// OrderRecord is what /order/create returns. Amount may arrive as a number or a string.
type OrderRecord struct {
	Amount          decimal.Decimal `json:"amount"`
	TransactionID   string          `json:"_id"`
	RazorpayOrderID string          `json:"razorpayOrderId"`
}

type VerifyOrderRequest struct {
	TransactionID     string `json:"transactionId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

type VerificationResult struct {
	Message string `json:"msg"`
}
