package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Payment is a subscription billing charge. Payments arrive in the payer's
// currency; admin aggregates normalize them to EUR before summing.
type Payment struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Amount      decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Currency    enums.Currency      `gorm:"column:currency;not null"`
	Status      enums.PaymentStatus `gorm:"column:status;type:payment_status;not null;default:'pending'"`
	PaymentDate time.Time           `gorm:"column:payment_date;not null;index"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
