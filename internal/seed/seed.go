package seed

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/internal/plans"
	"github.com/girotrack/girotrack-backend/internal/tax"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

// Params groups dependencies for boot-time seeding.
type Params struct {
	Plans  plans.Repository
	Tax    tax.Repository
	Logger *logger.Logger
}

// Seeder writes the baseline records the product needs before the first
// admin logs in. Every write is an idempotent ensure, so re-running on
// each boot is safe.
type Seeder struct {
	plans plans.Repository
	tax   tax.Repository
	logg  *logger.Logger
}

// New builds a seeder.
func New(params Params) (*Seeder, error) {
	if params.Plans == nil {
		return nil, errors.New("plans repo is required")
	}
	if params.Tax == nil {
		return nil, errors.New("tax repo is required")
	}
	return &Seeder{plans: params.Plans, tax: params.Tax, logg: params.Logger}, nil
}

// EnsureDefaults upserts the free and pro tiers plus the launch-country
// tax rules.
func (s *Seeder) EnsureDefaults(ctx context.Context) error {
	two := 2
	three := 3
	defaults := []models.Plan{
		{
			Name:         "Free",
			PriceMonthly: decimal.Zero,
			MaxVehicles:  &two,
			MaxPlatforms: &three,
			Features:     []string{"reports", "vehicle_metrics"},
			IsDefault:    true,
		},
		{
			Name:         "Pro",
			PriceMonthly: decimal.RequireFromString("9.90"),
			Features:     []string{"reports", "vehicle_metrics", "csv_export", "priority_support"},
		},
	}
	for _, plan := range defaults {
		if err := s.plans.Ensure(ctx, plan); err != nil {
			return err
		}
	}

	rules := map[string]decimal.Decimal{
		"BR": decimal.RequireFromString("0.15"),
		"PT": decimal.RequireFromString("0.11"),
		"ES": decimal.RequireFromString("0.15"),
		"PL": decimal.RequireFromString("0.12"),
	}
	for country, percentage := range rules {
		if err := s.tax.Ensure(ctx, country, percentage); err != nil {
			return err
		}
	}

	if s.logg != nil {
		s.logg.Info(ctx, "baseline plans and tax rules ensured")
	}
	return nil
}
