package cron

import (
	"context"
	"fmt"

	"github.com/girotrack/girotrack-backend/pkg/logger"
)

// RateRefresher forces an exchange rate fetch into the shared cache.
type RateRefresher interface {
	Refresh(ctx context.Context) error
}

// RatesWarmJobParams configures the exchange rate warm job.
type RatesWarmJobParams struct {
	Logger   *logger.Logger
	Provider RateRefresher
}

// NewRatesWarmJob builds the job that keeps the exchange rate cache fresh
// so request-path conversions rarely hit the upstream API.
func NewRatesWarmJob(params RatesWarmJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Provider == nil {
		return nil, fmt.Errorf("rate provider required")
	}
	return &ratesWarmJob{logg: params.Logger, provider: params.Provider}, nil
}

type ratesWarmJob struct {
	logg     *logger.Logger
	provider RateRefresher
}

func (j *ratesWarmJob) Name() string { return "rates_warm" }

func (j *ratesWarmJob) Run(ctx context.Context) error {
	if err := j.provider.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh exchange rates: %w", err)
	}
	return nil
}
