package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/girotrack/girotrack-backend/api/middleware"
	"github.com/girotrack/girotrack-backend/api/responses"
	"github.com/girotrack/girotrack-backend/api/validators"
	"github.com/girotrack/girotrack-backend/internal/reports"
	"github.com/girotrack/girotrack-backend/internal/users"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
	pkgerrors "github.com/girotrack/girotrack-backend/pkg/errors"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

// requestUser resolves the authenticated driver from the request context.
func requestUser(r *http.Request, repo users.Repository) (*models.User, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	user, err := repo.FindByID(r.Context(), userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "unknown user")
	}
	return user, nil
}

func ReportsSummary(svc *reports.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := requestUser(r, usersRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		from, to, err := validators.ParseQueryDateRange(r, time.Now().UTC())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter, err := summaryFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := svc.Summary(ctx, user, from, to, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load summary"))
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func summaryFilter(r *http.Request) (reports.Filter, error) {
	var filter reports.Filter

	platformID, err := validators.ParseQueryUUID(r, "platform_id")
	if err != nil {
		return filter, err
	}
	filter.PlatformID = platformID

	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := enums.ParseExpenseCategory(raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "unknown expense category").
				WithDetails(map[string]any{"field": "category"})
		}
		filter.Category = &category
	}
	return filter, nil
}

func ReportsMonthly(svc *reports.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := requestUser(r, usersRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		from, to, err := validators.ParseQueryDateRange(r, time.Now().UTC())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		series, err := svc.MonthlySeries(ctx, user, from, to)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load monthly series"))
			return
		}
		responses.WriteSuccess(w, series)
	}
}

func ReportsIncomeByPlatform(svc *reports.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := requestUser(r, usersRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		from, to, err := validators.ParseQueryDateRange(r, time.Now().UTC())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		buckets, err := svc.IncomeByPlatform(ctx, user, from, to)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load platform breakdown"))
			return
		}
		responses.WriteSuccess(w, buckets)
	}
}

func ReportsExpensesByCategory(svc *reports.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := requestUser(r, usersRepo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		from, to, err := validators.ParseQueryDateRange(r, time.Now().UTC())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		buckets, err := svc.ExpensesByCategory(ctx, user, from, to)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category breakdown"))
			return
		}
		responses.WriteSuccess(w, buckets)
	}
}
