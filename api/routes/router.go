package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/girotrack/girotrack-backend/api/controllers"
	"github.com/girotrack/girotrack-backend/api/middleware"
	"github.com/girotrack/girotrack-backend/internal/adminkpi"
	"github.com/girotrack/girotrack-backend/internal/plans"
	"github.com/girotrack/girotrack-backend/internal/reports"
	"github.com/girotrack/girotrack-backend/internal/subscriptions"
	"github.com/girotrack/girotrack-backend/internal/tax"
	"github.com/girotrack/girotrack-backend/internal/users"
	"github.com/girotrack/girotrack-backend/internal/vehicles"
	"github.com/girotrack/girotrack-backend/pkg/config"
	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/girotrack/girotrack-backend/pkg/logger"
	"github.com/girotrack/girotrack-backend/pkg/redis"
)

// RouterParams collects every dependency the HTTP surface needs.
type RouterParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           controllers.Pinger
	Redis        *redis.Client
	UsersRepo    users.Repository
	TaxRepo      tax.Repository
	PlansRepo    plans.Repository
	SubsRepo     subscriptions.Repository
	Reports      *reports.Service
	Vehicles     *vehicles.Service
	AdminKPI     *adminkpi.Service
	PromRegistry *prometheus.Registry
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, params.DB, logg))
	})

	if params.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/plans", controllers.PlansList(params.PlansRepo, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		if params.Redis != nil {
			r.Use(middleware.RateLimit(params.Redis, int64(cfg.RateLimit.Limit), cfg.RateLimit.Window, logg))
		}

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/account", func(r chi.Router) {
			r.Get("/subscription", controllers.AccountSubscription(params.SubsRepo, params.PlansRepo, params.UsersRepo, logg))
		})

		r.Route("/v1/reports", func(r chi.Router) {
			r.Get("/summary", controllers.ReportsSummary(params.Reports, params.UsersRepo, logg))
			r.Get("/monthly", controllers.ReportsMonthly(params.Reports, params.UsersRepo, logg))
			r.Get("/income-by-platform", controllers.ReportsIncomeByPlatform(params.Reports, params.UsersRepo, logg))
			r.Get("/expenses-by-category", controllers.ReportsExpensesByCategory(params.Reports, params.UsersRepo, logg))
		})

		r.Route("/v1/vehicles", func(r chi.Router) {
			r.Get("/summary", controllers.VehiclesSummary(params.Vehicles, params.UsersRepo, logg))
			r.Get("/daily-distance", controllers.VehiclesDailyDistance(params.Vehicles, params.UsersRepo, logg))
			r.Get("/daily-fuel", controllers.VehiclesDailyFuel(params.Vehicles, params.UsersRepo, logg))
			r.Get("/cost-per-km", controllers.VehiclesCostPerKm(params.Vehicles, params.UsersRepo, logg))
			r.Get("/maintenance", controllers.VehiclesMaintenance(params.Vehicles, params.UsersRepo, logg))
		})

		r.Route("/admin/v1", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Get("/ping", controllers.AdminPing())
			r.Get("/dashboard", controllers.AdminDashboard(params.AdminKPI, logg))
			r.Put("/tax-rules", controllers.AdminUpsertTaxRule(params.TaxRepo, logg))
		})
	})

	return r
}
