package tax

import (
	"context"
	"errors"

	"github.com/girotrack/girotrack-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// EstimatorParams groups dependencies for the tax estimator.
type EstimatorParams struct {
	Repo   Repository
	Logger *logger.Logger
}

// Estimator produces the advisory tax figure shown on financial summaries.
type Estimator struct {
	repo Repository
	logg *logger.Logger
}

// NewEstimator builds a tax estimator.
func NewEstimator(params EstimatorParams) (*Estimator, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Estimator{repo: params.Repo, logg: params.Logger}, nil
}

// Estimate applies the country's active flat rate to positive net profit.
// It never fails the caller: non-positive profit, a missing rule, and a
// lookup error all resolve to zero.
func (e *Estimator) Estimate(ctx context.Context, netProfit decimal.Decimal, country string) decimal.Decimal {
	if netProfit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	rule, err := e.repo.FindActiveByCountry(ctx, country)
	if err != nil {
		if e.logg != nil {
			e.logg.Warn(e.logg.WithField(ctx, "country", country), "tax rule lookup failed, estimating zero")
		}
		return decimal.Zero
	}
	if rule == nil {
		return decimal.Zero
	}

	return netProfit.Mul(rule.Percentage)
}
