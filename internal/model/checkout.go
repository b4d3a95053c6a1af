package model

import "sync"

// FormState holds what the payer typed for one checkout attempt.
type FormState struct {
	Name   string
	Email  string
	IsGift bool

	// optional OTP credentials; configured placeholders are used when empty
	Mobile string
	OTP    string

	mu        sync.Mutex
	isLoading bool
}

// SetLoading flips the loading flag and reports whether it changed.
func (f *FormState) SetLoading(loading bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isLoading == loading {
		return false
	}
	f.isLoading = loading
	return true
}

func (f *FormState) IsLoading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isLoading
}

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type Theme struct {
	Color string `json:"color"`
}

// CheckoutOptions is the object handed to the Razorpay checkout widget.
type CheckoutOptions struct {
	Key         string  `json:"key"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OrderID     string  `json:"order_id"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

// PaymentResult is what the widget reports to its completion handler.
type PaymentResult struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}
