package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Vehicle is a car, motorcycle, or bicycle the driver logs usage against.
type Vehicle struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Name      string         `gorm:"column:name;not null"`
	FuelType  enums.FuelType `gorm:"column:fuel_type;type:fuel_type;not null;default:'gasoline'"`
	Plate     *string        `gorm:"column:plate"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
