package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// MaintenanceRecord keeps a vehicle's service history (oil change, tires,
// brakes). Costs are presentation data; aggregation reads maintenance
// spending through the expense ledger.
type MaintenanceRecord struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	VehicleID  uuid.UUID       `gorm:"column:vehicle_id;type:uuid;not null;index"`
	Date       time.Time       `gorm:"column:date;type:date;not null"`
	OdometerKm *int            `gorm:"column:odometer_km"`
	Kind       string          `gorm:"column:kind;not null"`
	Cost       decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null"`
	Currency   enums.Currency  `gorm:"column:currency;not null"`
	Note       *string         `gorm:"column:note"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
