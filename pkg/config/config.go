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
	FeatureFlags FeatureFlagsConfig
	Idempotency  IdempotencyConfig
	RateLimit    RateLimitConfig
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
	Env          string `envconfig:"PEDOPT_APP_ENV" required:"true"`
	Port         string `envconfig:"PEDOPT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PEDOPT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PEDOPT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PEDOPT_DB_DSN"`
	Driver string `envconfig:"PEDOPT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PEDOPT_DB_HOST"`
	LegacyPort     int    `envconfig:"PEDOPT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PEDOPT_DB_USER"`
	LegacyPassword string `envconfig:"PEDOPT_DB_PASSWORD"`
	LegacyName     string `envconfig:"PEDOPT_DB_NAME"`
	LegacySSLMode  string `envconfig:"PEDOPT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PEDOPT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PEDOPT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PEDOPT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PEDOPT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PEDOPT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PEDOPT_REDIS_ADDR"`
	Password     string        `envconfig:"PEDOPT_REDIS_PASSWORD"`
	DB           int           `envconfig:"PEDOPT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PEDOPT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PEDOPT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PEDOPT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PEDOPT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PEDOPT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PEDOPT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PEDOPT_AUTO_MIGRATE" default:"false"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"PEDOPT_IDEMPOTENCY_TTL" default:"24h"`
}

type RateLimitConfig struct {
	Window     time.Duration `envconfig:"PEDOPT_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit    int           `envconfig:"PEDOPT_RATE_LIMIT_IP" default:"300"`
	ActorLimit int           `envconfig:"PEDOPT_RATE_LIMIT_ACTOR" default:"120"`
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
