package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/api/responses"
	"github.com/girotrack/girotrack-backend/api/validators"
	"github.com/girotrack/girotrack-backend/internal/adminkpi"
	"github.com/girotrack/girotrack-backend/internal/tax"
	pkgerrors "github.com/girotrack/girotrack-backend/pkg/errors"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

func AdminDashboard(svc *adminkpi.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		months, err := validators.ParseQueryInt(r, "months", adminkpi.DefaultMonthsBack, 1, adminkpi.MaxMonthsBack)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dashboard, err := svc.Dashboard(ctx, months)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dashboard"))
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}

type upsertTaxRulePayload struct {
	Country    string          `json:"country" validate:"required,len=2"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AdminUpsertTaxRule creates or updates the flat rate for a country.
// Repeating the request with the same body is a no-op.
func AdminUpsertTaxRule(repo tax.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload upsertTaxRulePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if payload.Percentage.IsNegative() || payload.Percentage.GreaterThan(decimal.NewFromInt(1)) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "percentage must be between 0 and 1"))
			return
		}

		if err := repo.Ensure(ctx, payload.Country, payload.Percentage); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store tax rule"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]any{
			"country":    payload.Country,
			"percentage": payload.Percentage,
		})
	}
}
