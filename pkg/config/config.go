package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	Password PasswordConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NOVASTORE_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"NOVASTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NOVASTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the key-value backend holding every collection.
type StoreConfig struct {
	Driver string `envconfig:"NOVASTORE_STORE_DRIVER" default:"sqlite"`
}

// NormalizedDriver returns the lower-cased driver name.
func (s StoreConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

type DBConfig struct {
	DSN         string `envconfig:"NOVASTORE_DB_DSN"`
	SQLitePath  string `envconfig:"NOVASTORE_SQLITE_PATH" default:"novastore.db"`
	AutoMigrate bool   `envconfig:"NOVASTORE_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"NOVASTORE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"NOVASTORE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"NOVASTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NOVASTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NOVASTORE_REDIS_URL"`
	Address      string        `envconfig:"NOVASTORE_REDIS_ADDR"`
	Password     string        `envconfig:"NOVASTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"NOVASTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NOVASTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NOVASTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NOVASTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NOVASTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NOVASTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NOVASTORE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NOVASTORE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NOVASTORE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NOVASTORE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NOVASTORE_ARGON_KEY_LEN" default:"32"`
}

// CheckoutConfig carries the fixed pricing constants applied to every order.
type CheckoutConfig struct {
	ShippingFee decimal.Decimal `envconfig:"NOVASTORE_SHIPPING_FEE" default:"40"`
	Currency    string          `envconfig:"NOVASTORE_CURRENCY" default:"USD"`
}

type CatalogConfig struct {
	SeedOnStart bool `envconfig:"NOVASTORE_CATALOG_SEED_ON_START" default:"true"`
}

// Default returns the configuration used when no environment is supplied,
// backed by the in-memory store.
func Default() *Config {
	return &Config{
		App:   AppConfig{Env: AppEnvDev, LogLevel: "info"},
		Store: StoreConfig{Driver: DriverMemory},
		Password: PasswordConfig{
			ArgonMemoryKB:    65536,
			ArgonTime:        3,
			ArgonParallelism: 2,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		Checkout: CheckoutConfig{ShippingFee: decimal.NewFromInt(40), Currency: "USD"},
		Catalog:  CatalogConfig{SeedOnStart: true},
	}
}

func (c *Config) validate() error {
	if c.Checkout.ShippingFee.IsNegative() {
		return fmt.Errorf("%s must be non-negative", EnvShippingFee)
	}
	switch c.Store.NormalizedDriver() {
	case DriverMemory:
		if c.App.IsProd() {
			return fmt.Errorf("%s=%s keeps no data across restarts and is not allowed in %s", EnvStoreDriver, DriverMemory, AppEnvProd)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.DB.SQLitePath) == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvSQLitePath)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
		}
	case DriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis driver", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStoreDriver, c.Store.Driver)
	}
	return nil
}
