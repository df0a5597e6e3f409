package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageLog records one day of driving for a vehicle. FuelLiters is set for
// combustion vehicles, EnergyKwh for electric ones; at most one of the two
// is meaningful per log.
type UsageLog struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index:idx_usage_logs_user_date"`
	VehicleID  uuid.UUID        `gorm:"column:vehicle_id;type:uuid;not null;index"`
	Date       time.Time        `gorm:"column:date;type:date;not null;index:idx_usage_logs_user_date"`
	DistanceKm decimal.Decimal  `gorm:"column:distance_km;type:numeric(10,2);not null"`
	FuelLiters *decimal.Decimal `gorm:"column:fuel_liters;type:numeric(8,3)"`
	EnergyKwh  *decimal.Decimal `gorm:"column:energy_kwh;type:numeric(8,3)"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
