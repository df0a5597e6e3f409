package adminkpi

import (
	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// KPIs is the headline block of the admin dashboard. Every monetary
// figure is in the reporting currency.
type KPIs struct {
	MRR              decimal.Decimal `json:"mrr"`
	TotalUsers       int64           `json:"total_users"`
	PayingUsers      int64           `json:"paying_users"`
	FreeUsers        int64           `json:"free_users"`
	OverdueUsers     int64           `json:"overdue_users"`
	RevenueThisMonth decimal.Decimal `json:"revenue_this_month"`
}

// RevenuePoint is one month of settled revenue.
type RevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SignupPoint is one month of new user registrations.
type SignupPoint struct {
	Month   string `json:"month"`
	Signups int64  `json:"signups"`
}

// TopDay is a single calendar day ranked by settled revenue.
type TopDay struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Dashboard is the full admin view: KPIs, charts, and the revenue
// leaderboard, all normalized to one currency.
type Dashboard struct {
	KPIs           KPIs           `json:"kpis"`
	MonthlyRevenue []RevenuePoint `json:"monthly_revenue"`
	MonthlyUsers   []SignupPoint  `json:"monthly_users"`
	TopDays        []TopDay       `json:"top_days"`
	Currency       enums.Currency `json:"currency"`
}
