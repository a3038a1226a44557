package payments

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// FindUnpaid returns the payment only while it is still unpaid. Callers use
// this as the fresh read before building an order.
func (r *Repo) FindUnpaid(ctx context.Context, id string) (Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).First(&p, "id = ? AND is_paid = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

func (r *Repo) FindByTransaction(ctx context.Context, appTransID string) (Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).First(&p, "transaction_id = ?", appTransID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

// ConditionalMarkPaid performs the unpaid->paid transition as a single
// conditional UPDATE. The WHERE clause on is_paid is the only serialization
// point for concurrent callback delivery: of two racing calls for the same
// transaction, exactly one sees RowsAffected == 1.
func (r *Repo) ConditionalMarkPaid(ctx context.Context, appTransID, method string) (int64, error) {
	paymentID, ok := PaymentIDFromTransID(appTransID)
	if !ok {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ? AND is_paid = ?", paymentID, false).
		Updates(map[string]any{
			"is_paid":        true,
			"transaction_id": appTransID,
			"payment_method": method,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
