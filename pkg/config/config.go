package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "CLASSCOOKS"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv    = "CLASSCOOKS_APP_ENV"
	EnvPort      = "CLASSCOOKS_APP_PORT"
	EnvDBDSN     = "CLASSCOOKS_DB_DSN"
	EnvDBHost    = "CLASSCOOKS_DB_HOST"
	EnvDBUser    = "CLASSCOOKS_DB_USER"
	EnvDBName    = "CLASSCOOKS_DB_NAME"
	EnvRedisURL  = "CLASSCOOKS_REDIS_URL"
	EnvJWTSecret = "CLASSCOOKS_JWT_SECRET"
	EnvJWTIssuer = "CLASSCOOKS_JWT_ISSUER"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cart         CartConfig
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
	Env          string `envconfig:"CLASSCOOKS_APP_ENV" required:"true"`
	Port         string `envconfig:"CLASSCOOKS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CLASSCOOKS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CLASSCOOKS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CLASSCOOKS_DB_DSN"`

	LegacyHost     string `envconfig:"CLASSCOOKS_DB_HOST"`
	LegacyPort     int    `envconfig:"CLASSCOOKS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CLASSCOOKS_DB_USER"`
	LegacyPassword string `envconfig:"CLASSCOOKS_DB_PASSWORD"`
	LegacyName     string `envconfig:"CLASSCOOKS_DB_NAME"`
	LegacySSLMode  string `envconfig:"CLASSCOOKS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CLASSCOOKS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CLASSCOOKS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CLASSCOOKS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CLASSCOOKS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CLASSCOOKS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CLASSCOOKS_REDIS_ADDR"`
	Password     string        `envconfig:"CLASSCOOKS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CLASSCOOKS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CLASSCOOKS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CLASSCOOKS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CLASSCOOKS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CLASSCOOKS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CLASSCOOKS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig describes how tokens minted by the external identity provider are
// verified. The backend never issues tokens itself.
type JWTConfig struct {
	Secret string `envconfig:"CLASSCOOKS_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"CLASSCOOKS_JWT_ISSUER" required:"true"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"CLASSCOOKS_CART_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CLASSCOOKS_AUTO_MIGRATE" default:"false"`
}

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

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
