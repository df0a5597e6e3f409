package config

// EnvPrefix is passed to envconfig; individual tags carry the full name so
// the prefix stays empty here.
const EnvPrefix = ""

// App environment values.
const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names shared between Load and tests.
const (
	EnvAppEnv     = "GIROTRACK_APP_ENV"
	EnvPort       = "GIROTRACK_APP_PORT"
	EnvDBDSN      = "GIROTRACK_DB_DSN"
	EnvDBHost     = "GIROTRACK_DB_HOST"
	EnvDBUser     = "GIROTRACK_DB_USER"
	EnvDBName     = "GIROTRACK_DB_NAME"
	EnvRedisURL   = "GIROTRACK_REDIS_URL"
	EnvJWTSecret  = "GIROTRACK_JWT_SECRET"
	EnvJWTIssuer  = "GIROTRACK_JWT_ISSUER"
	EnvJWTExpMins = "GIROTRACK_JWT_EXPIRATION_MINUTES"
	EnvRatesURL   = "GIROTRACK_RATES_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
