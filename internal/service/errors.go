package service

import (
	"errors"
	"fmt"
	"testbuddy-checkout/internal/client"
)

var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrSDKUnavailable       = errors.New("checkout sdk unavailable")
	ErrInFlight             = errors.New("checkout already in flight")
	ErrNoToken              = errors.New("no auth token")
	ErrPaymentInit          = errors.New("payment initialization failed")
	ErrSessionNotFound      = errors.New("checkout session not found")
	ErrInvalidPaymentResult = errors.New("invalid payment result")
	ErrSignatureMismatch    = errors.New("payment signature mismatch")
	ErrVerification         = errors.New("payment verification failed")
)

// User-facing notice texts.
const (
	MsgMissingFields      = "Please fill in all required fields."
	MsgInvalidEmail       = "Please enter a valid email address."
	MsgSDKUnavailable     = "Failed to load Razorpay SDK"
	MsgInFlight           = "A payment is already being processed."
	MsgOTPError           = "Error verifying OTP"
	MsgNoToken            = "Failed to verify OTP and retrieve token."
	MsgKeyError           = "Error getting Razorpay key"
	MsgOrderError         = "Error creating order"
	MsgPaymentInit        = "Failed to initialize payment."
	MsgSessionNotFound    = "Payment session expired. Please try again."
	MsgVerificationFailed = "Payment verification failed."
	MsgPaymentVerified    = "Payment verified"
)

type Step string

const (
	StepVerifyOTP   Step = "verify_otp"
	StepPaymentKey  Step = "payment_key"
	StepCreateOrder Step = "create_order"
	StepVerifyOrder Step = "verify_order"
)

// StepError ties a failed backend call to the checkout step that issued it.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Kind classifies the failure. Context cancellation and timeouts count as transport.
func (e *StepError) Kind() client.ErrorKind {
	var apiErr *client.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.Kind
	}
	return client.KindTransport
}

func (e *StepError) StatusCode() int {
	var apiErr *client.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func stepMessage(step Step) string {
	switch step {
	case StepVerifyOTP:
		return MsgOTPError
	case StepPaymentKey:
		return MsgKeyError
	case StepCreateOrder:
		return MsgOrderError
	}
	return MsgVerificationFailed
}
