package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRule is a country-level flat percentage applied to net profit for the
// advisory tax estimate. Exactly one active rule exists per country; the
// repository upserts on the country key.
type TaxRule struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Country    string          `gorm:"column:country;not null;uniqueIndex"`
	Percentage decimal.Decimal `gorm:"column:percentage;type:numeric(5,4);not null"`
	IsActive   bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
