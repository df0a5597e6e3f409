package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Plan is a subscription tier. Nil limits mean unlimited; the default plan
// is the free tier and never counts toward recurring revenue.
type Plan struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null;uniqueIndex"`
	PriceMonthly decimal.Decimal `gorm:"column:price_monthly;type:numeric(12,2);not null"`
	MaxVehicles  *int            `gorm:"column:max_vehicles"`
	MaxPlatforms *int            `gorm:"column:max_platforms"`
	Features     pq.StringArray  `gorm:"column:features;type:text[];default:ARRAY[]::text[]"`
	IsDefault    bool            `gorm:"column:is_default;not null;default:false"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// IsFree reports whether the plan charges nothing monthly.
func (p Plan) IsFree() bool {
	return p.IsDefault || p.PriceMonthly.IsZero()
}
