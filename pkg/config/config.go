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
	Password     PasswordConfig
	Teams        TeamsConfig
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
	Env          string `envconfig:"PROMPTDECK_APP_ENV" required:"true"`
	Port         string `envconfig:"PROMPTDECK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PROMPTDECK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROMPTDECK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PROMPTDECK_DB_DSN"`
	Driver string `envconfig:"PROMPTDECK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PROMPTDECK_DB_HOST"`
	LegacyPort     int    `envconfig:"PROMPTDECK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PROMPTDECK_DB_USER"`
	LegacyPassword string `envconfig:"PROMPTDECK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PROMPTDECK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PROMPTDECK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROMPTDECK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROMPTDECK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROMPTDECK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROMPTDECK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROMPTDECK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PROMPTDECK_REDIS_ADDR"`
	Password     string        `envconfig:"PROMPTDECK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROMPTDECK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROMPTDECK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROMPTDECK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROMPTDECK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROMPTDECK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROMPTDECK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PROMPTDECK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PROMPTDECK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PROMPTDECK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PROMPTDECK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PROMPTDECK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PROMPTDECK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PROMPTDECK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PROMPTDECK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PROMPTDECK_ARGON_KEY_LEN" default:"32"`
}

// TeamsConfig carries the membership authority tunables. MaxTeamsPerUser
// bounds how many non-personal teams one user may own.
type TeamsConfig struct {
	MaxTeamsPerUser  int    `envconfig:"PROMPTDECK_MAX_TEAMS_PER_USER" default:"20"`
	PersonalTeamName string `envconfig:"PROMPTDECK_PERSONAL_TEAM_NAME" default:"Personal"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PROMPTDECK_AUTO_MIGRATE" default:"false"`
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
