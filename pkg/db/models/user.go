package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// User is the tenant boundary. Every ledger record hangs off a user, and
// aggregations never cross users except on the admin dashboard.
type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string         `gorm:"column:email;not null;uniqueIndex"`
	Name      string         `gorm:"column:name;not null"`
	Country   string         `gorm:"column:country;not null;default:'BR'"`
	Currency  enums.Currency `gorm:"column:currency;not null;default:'BRL'"`
	Role      enums.UserRole `gorm:"column:role;type:user_role;not null;default:'driver'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
