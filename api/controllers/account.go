package controllers

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/api/responses"
	"github.com/girotrack/girotrack-backend/internal/plans"
	"github.com/girotrack/girotrack-backend/internal/subscriptions"
	"github.com/girotrack/girotrack-backend/internal/users"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
	pkgerrors "github.com/girotrack/girotrack-backend/pkg/errors"
	"github.com/girotrack/girotrack-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type planPayload struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PriceMonthly decimal.Decimal `json:"price_monthly"`
	MaxVehicles  *int            `json:"max_vehicles"`
	MaxPlatforms *int            `json:"max_platforms"`
	Features     []string        `json:"features"`
	IsDefault    bool            `json:"is_default"`
}

type subscriptionPayload struct {
	Status    enums.SubscriptionStatus `json:"status"`
	StartDate time.Time                `json:"start_date"`
	EndDate   *time.Time               `json:"end_date"`
}

type accountSubscriptionPayload struct {
	Plan         *planPayload         `json:"plan"`
	Subscription *subscriptionPayload `json:"subscription"`
}

func toPlanPayload(plan *models.Plan) *planPayload {
	if plan == nil {
		return nil
	}
	return &planPayload{
		ID:           plan.ID.String(),
		Name:         plan.Name,
		PriceMonthly: plan.PriceMonthly.Round(2),
		MaxVehicles:  plan.MaxVehicles,
		MaxPlatforms: plan.MaxPlatforms,
		Features:     plan.Features,
		IsDefault:    plan.IsDefault,
	}
}

// PlansList exposes the pricing tiers, cheapest first. Public so the
// marketing site can render them without a session.
func PlansList(repo plans.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tiers, err := repo.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list plans"))
			return
		}

		payload := make([]*planPayload, 0, len(tiers))
		for i := range tiers {
			payload = append(payload, toPlanPayload(&tiers[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

// AccountSubscription returns the caller's current subscription and plan.
// A user with no live subscription is on the default free tier.
func AccountSubscription(subsRepo subscriptions.Repository, plansRepo plans.Repository, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := requestUser(r, usersRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		subscription, err := subsRepo.FindActiveByUser(ctx, user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription"))
			return
		}

		payload := accountSubscriptionPayload{}
		if subscription != nil {
			payload.Plan = toPlanPayload(subscription.Plan)
			payload.Subscription = &subscriptionPayload{
				Status:    subscription.Status,
				StartDate: subscription.StartDate,
				EndDate:   subscription.EndDate,
			}
		} else {
			fallback, err := plansRepo.FindDefault(ctx)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default plan"))
				return
			}
			payload.Plan = toPlanPayload(fallback)
		}

		responses.WriteSuccess(w, payload)
	}
}
