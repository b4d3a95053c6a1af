package repository

import (
	"context"
	"testbuddy-checkout/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.CheckoutAttempt) error
	FindByID(ctx context.Context, attemptID string) (*model.CheckoutAttempt, error)
	MarkOpened(ctx context.Context, attemptID, transactionID, razorpayOrderID, amount string) error
	MarkVerified(ctx context.Context, attemptID, razorpayPaymentID, message string) error
	MarkFailed(ctx context.Context, attemptID, step, message string) error
	ListByEmail(ctx context.Context, email string) ([]*model.CheckoutAttempt, error)
}

type attemptRepoImpl struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepoImpl{
		db: db,
	}
}

func (r *attemptRepoImpl) Create(ctx context.Context, attempt *model.CheckoutAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepoImpl) FindByID(ctx context.Context, attemptID string) (*model.CheckoutAttempt, error) {
	var attempt model.CheckoutAttempt
	err := r.db.WithContext(ctx).
		Where("id = ?", attemptID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}

	return &attempt, nil
}

func (r *attemptRepoImpl) MarkOpened(ctx context.Context, attemptID, transactionID, razorpayOrderID, amount string) error {
	return r.update(ctx, attemptID, []model.AttemptStatus{model.AttemptStarted}, map[string]interface{}{
		"status":            model.AttemptOpened,
		"transaction_id":    transactionID,
		"razorpay_order_id": razorpayOrderID,
		"amount":            amount,
	})
}

func (r *attemptRepoImpl) MarkVerified(ctx context.Context, attemptID, razorpayPaymentID, message string) error {
	return r.update(ctx, attemptID, []model.AttemptStatus{model.AttemptOpened}, map[string]interface{}{
		"status":              model.AttemptVerified,
		"razorpay_payment_id": razorpayPaymentID,
		"message":             message,
	})
}

func (r *attemptRepoImpl) MarkFailed(ctx context.Context, attemptID, step, message string) error {
	return r.update(ctx, attemptID, []model.AttemptStatus{model.AttemptStarted, model.AttemptOpened}, map[string]interface{}{
		"status":      model.AttemptFailed,
		"failed_step": step,
		"message":     message,
	})
}

func (r *attemptRepoImpl) ListByEmail(ctx context.Context, email string) ([]*model.CheckoutAttempt, error) {
	var attempts []*model.CheckoutAttempt
	err := r.db.WithContext(ctx).
		Where("payer_email = ?", email).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	return attempts, nil
}

// update only moves attempts forward; a row not in one of from is left alone.
func (r *attemptRepoImpl) update(ctx context.Context, attemptID string, from []model.AttemptStatus, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.CheckoutAttempt{}).
		Where("id = ? AND status IN ?", attemptID, from).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
