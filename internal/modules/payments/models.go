package payments

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Payment is the merchant-side payment record. IsPaid moves false->true
// exactly once and never back; TransactionID and PaymentMethod are set
// together at that moment.
type Payment struct {
	ID               string          `gorm:"type:char(36);primaryKey"`
	PaymentAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PayerInformation datatypes.JSON  `gorm:"type:json;not null"`
	IsPaid           bool            `gorm:"not null;default:false"`
	TransactionID    *string         `gorm:"type:varchar(80);uniqueIndex:ux_payments_transaction_id"`
	PaymentMethod    *string         `gorm:"type:varchar(32)"`
	SuccessHook      *string         `gorm:"type:varchar(64)"`
	CreatedAt        time.Time       `gorm:"type:datetime(3);not null"`
	UpdatedAt        time.Time       `gorm:"type:datetime(3);not null"`
}

func (Payment) TableName() string { return "payments" }

type PayerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (p Payment) Payer() (PayerInfo, error) {
	var info PayerInfo
	if err := json.Unmarshal(p.PayerInformation, &info); err != nil {
		return PayerInfo{}, err
	}
	return info, nil
}

// PaymentIDFromTransID strips the yymmdd_ prefix from a gateway transaction
// id ("240101_<payment id>").
func PaymentIDFromTransID(appTransID string) (string, bool) {
	parts := strings.SplitN(appTransID, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
