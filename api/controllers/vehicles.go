package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/girotrack/girotrack-backend/api/responses"
	"github.com/girotrack/girotrack-backend/api/validators"
	"github.com/girotrack/girotrack-backend/internal/users"
	"github.com/girotrack/girotrack-backend/internal/vehicles"
	pkgerrors "github.com/girotrack/girotrack-backend/pkg/errors"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

// vehiclesError maps an unknown vehicle filter to a not-found response
// and everything else to a dependency failure.
func vehiclesError(err error, message string) error {
	if errors.Is(err, vehicles.ErrVehicleNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

func VehiclesSummary(svc *vehicles.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
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
		vehicleID, err := validators.ParseQueryUUID(r, "vehicle_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := svc.Summary(ctx, user.ID, from, to, vehicleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, vehiclesError(err, "load vehicle summary"))
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func VehiclesDailyDistance(svc *vehicles.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
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
		vehicleID, err := validators.ParseQueryUUID(r, "vehicle_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		series, err := svc.DailyDistance(ctx, user.ID, from, to, vehicleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, vehiclesError(err, "load daily distance"))
			return
		}
		responses.WriteSuccess(w, series)
	}
}

func VehiclesDailyFuel(svc *vehicles.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
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
		vehicleID, err := validators.ParseQueryUUID(r, "vehicle_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		series, err := svc.DailyConsumption(ctx, user.ID, from, to, vehicleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, vehiclesError(err, "load daily consumption"))
			return
		}
		responses.WriteSuccess(w, series)
	}
}

func VehiclesCostPerKm(svc *vehicles.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
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
		vehicleID, err := validators.ParseQueryUUID(r, "vehicle_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := svc.CostPerKmReport(ctx, user, from, to, vehicleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, vehiclesError(err, "load cost per km"))
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func VehiclesMaintenance(svc *vehicles.Service, usersRepo users.Repository, logg *logger.Logger) http.HandlerFunc {
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
		vehicleID, err := validators.ParseQueryUUID(r, "vehicle_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		history, err := svc.MaintenanceHistory(ctx, user, from, to, vehicleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, vehiclesError(err, "load maintenance history"))
			return
		}
		responses.WriteSuccess(w, history)
	}
}
