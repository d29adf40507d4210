package config

const (
	EnvPrefix = "NOVASTORE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"

	EnvAppEnv      = "NOVASTORE_APP_ENV"
	EnvLogLevel    = "NOVASTORE_LOG_LEVEL"
	EnvStoreDriver = "NOVASTORE_STORE_DRIVER"
	EnvDBDSN       = "NOVASTORE_DB_DSN"
	EnvSQLitePath  = "NOVASTORE_SQLITE_PATH"
	EnvRedisURL    = "NOVASTORE_REDIS_URL"
	EnvRedisAddr   = "NOVASTORE_REDIS_ADDR"
	EnvShippingFee = "NOVASTORE_SHIPPING_FEE"
)
