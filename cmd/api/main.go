package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/girotrack/girotrack-backend/api/routes"
	"github.com/girotrack/girotrack-backend/internal/adminkpi"
	"github.com/girotrack/girotrack-backend/internal/currency"
	"github.com/girotrack/girotrack-backend/internal/plans"
	"github.com/girotrack/girotrack-backend/internal/reports"
	"github.com/girotrack/girotrack-backend/internal/seed"
	"github.com/girotrack/girotrack-backend/internal/subscriptions"
	"github.com/girotrack/girotrack-backend/internal/tax"
	"github.com/girotrack/girotrack-backend/internal/users"
	"github.com/girotrack/girotrack-backend/internal/vehicles"
	"github.com/girotrack/girotrack-backend/pkg/config"
	"github.com/girotrack/girotrack-backend/pkg/db"
	"github.com/girotrack/girotrack-backend/pkg/logger"
	"github.com/girotrack/girotrack-backend/pkg/metrics"
	"github.com/girotrack/girotrack-backend/pkg/migrate"
	"github.com/girotrack/girotrack-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	ratesMetrics := metrics.NewRatesMetrics(promRegistry)

	rateFetcher, err := currency.NewHTTPFetcher(cfg.Rates)
	if err != nil {
		logg.Error(context.Background(), "failed to create rate fetcher", err)
		os.Exit(1)
	}
	converter, err := currency.NewProvider(currency.ProviderParams{
		Cache:   currency.NewRateCache(cfg.Rates.CacheTTL),
		Fetcher: rateFetcher,
		Logger:  logg,
		Metrics: ratesMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create currency provider", err)
		os.Exit(1)
	}

	taxRepo := tax.NewRepository(dbClient.DB())
	plansRepo := plans.NewRepository(dbClient.DB())
	estimator, err := tax.NewEstimator(tax.EstimatorParams{Repo: taxRepo, Logger: logg})
	if err != nil {
		logg.Error(context.Background(), "failed to create tax estimator", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.ServiceParams{
		Repo:      reports.NewRepository(dbClient.DB()),
		Converter: converter,
		Tax:       estimator,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	vehiclesService, err := vehicles.NewService(vehicles.ServiceParams{
		Repo:      vehicles.NewRepository(dbClient.DB()),
		Converter: converter,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicles service", err)
		os.Exit(1)
	}

	adminService, err := adminkpi.NewService(adminkpi.ServiceParams{
		Repo:      adminkpi.NewRepository(dbClient.DB()),
		Converter: converter,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin KPI service", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedOnBoot {
		seeder, err := seed.New(seed.Params{
			Plans:  plansRepo,
			Tax:    taxRepo,
			Logger: logg,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create seeder", err)
			os.Exit(1)
		}
		if err := seeder.EnsureDefaults(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed defaults", err)
			os.Exit(1)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:       cfg,
			Logger:       logg,
			DB:           dbClient,
			Redis:        redisClient,
			UsersRepo:    users.NewRepository(dbClient.DB()),
			TaxRepo:      taxRepo,
			PlansRepo:    plansRepo,
			SubsRepo:     subscriptions.NewRepository(dbClient.DB()),
			Reports:      reportsService,
			Vehicles:     vehiclesService,
			AdminKPI:     adminService,
			PromRegistry: promRegistry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
