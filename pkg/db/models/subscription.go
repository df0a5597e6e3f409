package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Subscription binds a user to a plan for a billing period.
type Subscription struct {
	ID        uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	PlanID    uuid.UUID                `gorm:"column:plan_id;type:uuid;not null;index"`
	Status    enums.SubscriptionStatus `gorm:"column:status;type:subscription_status;not null;default:'trial'"`
	StartDate time.Time                `gorm:"column:start_date;not null"`
	EndDate   *time.Time               `gorm:"column:end_date"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	Plan *Plan `gorm:"foreignKey:PlanID"`
	User *User `gorm:"foreignKey:UserID"`
}
