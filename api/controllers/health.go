package controllers

import (
	"context"
	"net/http"

	"github.com/girotrack/girotrack-backend/api/responses"
	"github.com/girotrack/girotrack-backend/pkg/config"
	pkgerrors "github.com/girotrack/girotrack-backend/pkg/errors"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

// Pinger checks a backing dependency's liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GiroTrack-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database answers. Redis is
// optional at runtime, so a dead cache does not fail readiness.
func HealthReady(cfg *config.Config, db Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GiroTrack-Env", cfg.App.Env)
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
