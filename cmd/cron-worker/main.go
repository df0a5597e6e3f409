package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/girotrack/girotrack-backend/internal/cron"
	"github.com/girotrack/girotrack-backend/internal/currency"
	"github.com/girotrack/girotrack-backend/internal/subscriptions"
	"github.com/girotrack/girotrack-backend/pkg/config"
	"github.com/girotrack/girotrack-backend/pkg/db"
	"github.com/girotrack/girotrack-backend/pkg/logger"
	"github.com/girotrack/girotrack-backend/pkg/metrics"
	"github.com/girotrack/girotrack-backend/pkg/migrate"
	"github.com/girotrack/girotrack-backend/pkg/redis"
)

const lockKeyFormat = "gt:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	ratesMetrics := metrics.NewRatesMetrics(prometheus.DefaultRegisterer)
	rateFetcher, err := currency.NewHTTPFetcher(cfg.Rates)
	if err != nil {
		logg.Error(context.Background(), "failed to create rate fetcher", err)
		os.Exit(1)
	}
	rateProvider, err := currency.NewProvider(currency.ProviderParams{
		Cache:   currency.NewRateCache(cfg.Rates.CacheTTL),
		Fetcher: rateFetcher,
		Logger:  logg,
		Metrics: ratesMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create currency provider", err)
		os.Exit(1)
	}

	ratesJob, err := cron.NewRatesWarmJob(cron.RatesWarmJobParams{
		Logger:   logg,
		Provider: rateProvider,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create rates warm job", err)
		os.Exit(1)
	}

	overdueJob, err := cron.NewSubscriptionOverdueJob(cron.SubscriptionOverdueJobParams{
		Logger: logg,
		Repo:   subscriptions.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscription overdue job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(ratesJob, overdueJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
