package model

import "time"

type AttemptStatus string

const (
	AttemptStarted  AttemptStatus = "STARTED"
	AttemptOpened   AttemptStatus = "OPENED" // options handed to the widget
	AttemptVerified AttemptStatus = "VERIFIED"
	AttemptFailed   AttemptStatus = "FAILED"
)

// CheckoutAttempt is the audit row of one checkout sequence. The auth token is never stored.
type CheckoutAttempt struct {
	ID                string        `gorm:"primaryKey;size:36;not null"`
	PayerName         string        `gorm:"size:128;not null"`
	PayerEmail        string        `gorm:"size:255;index;not null"`
	IsGift            bool          `gorm:"not null;default:false"`
	Status            AttemptStatus `gorm:"size:16;index;not null"`
	FailedStep        string        `gorm:"size:32"`
	TransactionID     string        `gorm:"size:64;index"` // backend order _id
	RazorpayOrderID   string        `gorm:"size:64;index"`
	RazorpayPaymentID string        `gorm:"size:64"`
	Amount            string        `gorm:"size:32"`
	Message           string        `gorm:"size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
