package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Rates        RatesConfig
	RateLimit    RateLimitConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GIROTRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"GIROTRACK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GIROTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GIROTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GIROTRACK_DB_DSN"`
	Driver string `envconfig:"GIROTRACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GIROTRACK_DB_HOST"`
	LegacyPort     int    `envconfig:"GIROTRACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GIROTRACK_DB_USER"`
	LegacyPassword string `envconfig:"GIROTRACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"GIROTRACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"GIROTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GIROTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GIROTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GIROTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GIROTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GIROTRACK_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"GIROTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GIROTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GIROTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GIROTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GIROTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GIROTRACK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GIROTRACK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GIROTRACK_JWT_EXPIRATION_MINUTES" required:"true"`
}

// RatesConfig drives the exchange-rate provider. The external fetch must
// stay bounded; a slow rate source can never stall an aggregation request.
type RatesConfig struct {
	URL          string        `envconfig:"GIROTRACK_RATES_URL" default:"https://open.er-api.com/v6/latest/EUR"`
	FetchTimeout time.Duration `envconfig:"GIROTRACK_RATES_FETCH_TIMEOUT" default:"5s"`
	CacheTTL     time.Duration `envconfig:"GIROTRACK_RATES_CACHE_TTL" default:"1h"`
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"GIROTRACK_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"GIROTRACK_RATE_LIMIT_REQUESTS" default:"120"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"GIROTRACK_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"GIROTRACK_CRON_LOCK_TTL" default:"55m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GIROTRACK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GIROTRACK_AUTO_MIGRATE" default:"false"`
	SeedOnBoot  bool `envconfig:"GIROTRACK_SEED_ON_BOOT" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
