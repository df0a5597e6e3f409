package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Expense is a spending ledger entry in the owner's configured currency.
type Expense struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index:idx_expenses_user_date"`
	Category  enums.ExpenseCategory `gorm:"column:category;type:expense_category;not null"`
	Amount    decimal.Decimal       `gorm:"column:amount;type:numeric(12,2);not null"`
	Currency  enums.Currency        `gorm:"column:currency;not null"`
	Date      time.Time             `gorm:"column:date;type:date;not null;index:idx_expenses_user_date"`
	Note      *string               `gorm:"column:note"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
