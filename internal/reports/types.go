package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// OffPlatformLabel is the reserved bucket for income with no platform
// attached. Buckets are keyed by platform id, so a user naming a platform
// "no_platform" still gets its own bucket.
const OffPlatformLabel = "no_platform"

// Summary is the headline financial picture for one driver over a period.
// All amounts are expressed in the driver's configured currency and rounded
// for presentation.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	TaxEstimate   decimal.Decimal `json:"tax_estimate"`
	NetAfterTax   decimal.Decimal `json:"net_after_tax"`
	Currency      enums.Currency  `json:"currency"`
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
}

// MonthlyPoint is one month of aggregated activity. Months without any
// ledger entries are omitted from the series.
type MonthlyPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// Bucket is one slice of a breakdown (per platform or per category),
// ordered by descending amount. PlatformID is nil for the off-platform
// bucket and for category breakdowns.
type Bucket struct {
	Label      string          `json:"label"`
	PlatformID *uuid.UUID      `json:"platform_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Count      int             `json:"count"`
}
