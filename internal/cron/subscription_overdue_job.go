package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/girotrack/girotrack-backend/internal/subscriptions"
	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

const defaultOverdueLimit = 250

// SubscriptionOverdueJobParams configures the overdue sweep.
type SubscriptionOverdueJobParams struct {
	Logger *logger.Logger
	Repo   subscriptions.Repository
	Limit  int
	Now    func() time.Time
}

// NewSubscriptionOverdueJob builds the job that moves active
// subscriptions past their end date into overdue. The admin dashboard
// counts overdue subscribers as their own KPI bucket, so the sweep is
// what keeps that figure honest.
func NewSubscriptionOverdueJob(params SubscriptionOverdueJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("subscriptions repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultOverdueLimit
	}
	return &subscriptionOverdueJob{
		logg:  params.Logger,
		repo:  params.Repo,
		limit: limit,
		now:   now,
	}, nil
}

type subscriptionOverdueJob struct {
	logg  *logger.Logger
	repo  subscriptions.Repository
	limit int
	now   func() time.Time
}

func (j *subscriptionOverdueJob) Name() string { return "subscription_overdue" }

// Run sweeps expired active subscriptions. A failing row does not stop
// the sweep; errors accumulate and surface together.
func (j *subscriptionOverdueJob) Run(ctx context.Context) error {
	expired, err := j.repo.ListActiveExpired(ctx, j.now(), j.limit)
	if err != nil {
		return fmt.Errorf("list expired subscriptions: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	var errs error
	transitioned := 0
	for _, subscription := range expired {
		if !subscription.Status.CanTransitionTo(enums.SubscriptionStatusOverdue) {
			continue
		}
		if err := j.repo.UpdateStatus(ctx, subscription.ID, enums.SubscriptionStatusOverdue); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("subscription %s: %w", subscription.ID, err))
			continue
		}
		transitioned++
	}

	j.logg.Info(j.logg.WithField(ctx, "transitioned", transitioned), "overdue sweep complete")
	return errs
}
