package config

// EnvPrefix is passed to envconfig; individual fields carry the full
// variable name so the prefix stays empty here.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, kept as constants so tests and error
// messages stay in sync with the struct tags.
const (
	EnvAppEnv       = "PEDOPT_APP_ENV"
	EnvPort         = "PEDOPT_APP_PORT"
	EnvLogLevel     = "PEDOPT_LOG_LEVEL"
	EnvDBDSN        = "PEDOPT_DB_DSN"
	EnvDBHost       = "PEDOPT_DB_HOST"
	EnvDBPort       = "PEDOPT_DB_PORT"
	EnvDBUser       = "PEDOPT_DB_USER"
	EnvDBPassword   = "PEDOPT_DB_PASSWORD"
	EnvDBName       = "PEDOPT_DB_NAME"
	EnvDBSSLMode    = "PEDOPT_DB_SSLMODE"
	EnvRedisURL     = "PEDOPT_REDIS_URL"
	EnvUseSQLite    = "PEDOPT_USE_SQLITE"
	EnvAutoMigrate  = "PEDOPT_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
