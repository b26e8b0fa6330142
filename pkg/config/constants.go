package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "PROMPTDECK_APP_ENV"
	EnvPort       = "PROMPTDECK_APP_PORT"
	EnvDBDSN      = "PROMPTDECK_DB_DSN"
	EnvDBHost     = "PROMPTDECK_DB_HOST"
	EnvDBUser     = "PROMPTDECK_DB_USER"
	EnvDBName     = "PROMPTDECK_DB_NAME"
	EnvRedisURL   = "PROMPTDECK_REDIS_URL"
	EnvJWTSecret  = "PROMPTDECK_JWT_SECRET"
	EnvJWTIssuer  = "PROMPTDECK_JWT_ISSUER"
	EnvJWTExpMins = "PROMPTDECK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
