package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Env var names used outside struct tags (tests, error messages).
const (
	EnvAppEnv    = "GAMESETUP_APP_ENV"
	EnvPort      = "GAMESETUP_APP_PORT"
	EnvDBDriver  = "GAMESETUP_DB_DRIVER"
	EnvDBDSN     = "GAMESETUP_DB_DSN"
	EnvRedisURL  = "GAMESETUP_REDIS_URL"
	EnvJWTSecret = "GAMESETUP_JWT_SECRET"
	EnvRAWGKey   = "GAMESETUP_RAWG_API_KEY"
)

// InsecureDefaultJWTSecret mirrors the fallback the original deployment
// shipped with. Running on it is logged loudly at startup.
const InsecureDefaultJWTSecret = "secret"

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RAWG         RAWGConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GAMESETUP_APP_ENV" default:"dev"`
	Port         string `envconfig:"GAMESETUP_APP_PORT" default:"4000"`
	LogLevel     string `envconfig:"GAMESETUP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GAMESETUP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"GAMESETUP_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"GAMESETUP_DB_DSN" default:"gamesetup.db"`

	MaxOpenConns    int           `envconfig:"GAMESETUP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GAMESETUP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GAMESETUP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GAMESETUP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%s must be sqlite or postgres, got %q", EnvDBDriver, db.Driver)
	}
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

// RedisConfig is optional; with no URL or address the game-metadata cache is
// disabled and lookups always go upstream.
type RedisConfig struct {
	URL          string        `envconfig:"GAMESETUP_REDIS_URL"`
	Address      string        `envconfig:"GAMESETUP_REDIS_ADDR"`
	Password     string        `envconfig:"GAMESETUP_REDIS_PASSWORD"`
	DB           int           `envconfig:"GAMESETUP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GAMESETUP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GAMESETUP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GAMESETUP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GAMESETUP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GAMESETUP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret          string `envconfig:"GAMESETUP_JWT_SECRET" default:"secret"`
	Issuer          string `envconfig:"GAMESETUP_JWT_ISSUER" default:"gamesetup"`
	ExpirationHours int    `envconfig:"GAMESETUP_JWT_EXPIRATION_HOURS" default:"168"`
}

// Expiration returns the configured token lifetime (7 days by default).
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationHours <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationHours) * time.Hour
}

// UsesInsecureDefault reports whether the process runs on the fallback secret.
func (j JWTConfig) UsesInsecureDefault() bool {
	return j.Secret == InsecureDefaultJWTSecret
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GAMESETUP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GAMESETUP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GAMESETUP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GAMESETUP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GAMESETUP_ARGON_KEY_LEN" default:"32"`
}

type RAWGConfig struct {
	APIKey   string        `envconfig:"GAMESETUP_RAWG_API_KEY"`
	BaseURL  string        `envconfig:"GAMESETUP_RAWG_BASE_URL" default:"https://api.rawg.io/api"`
	Timeout  time.Duration `envconfig:"GAMESETUP_RAWG_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"GAMESETUP_RAWG_CACHE_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool   `envconfig:"GAMESETUP_AUTO_MIGRATE" default:"false"`
	CatalogPath string `envconfig:"GAMESETUP_CATALOG_PATH"`
}
