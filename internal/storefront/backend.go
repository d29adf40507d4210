package storefront

import (
	"context"
	"fmt"

	"github.com/angelmondragon/novastore/pkg/config"
	"github.com/angelmondragon/novastore/pkg/db"
	"github.com/angelmondragon/novastore/pkg/kv"
	"github.com/angelmondragon/novastore/pkg/logger"
	"github.com/angelmondragon/novastore/pkg/migrate"
	"github.com/angelmondragon/novastore/pkg/redis"
	"go.uber.org/multierr"
)

// OpenStore connects the key-value backend selected by cfg.Store.Driver.
// SQL backends are migrated first when auto-migration is enabled.
func OpenStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Store, error) {
	driver := cfg.Store.NormalizedDriver()
	ctx = logg.WithField(ctx, "store_driver", driver)

	switch driver {
	case config.DriverMemory:
		logg.Warn(ctx, "using in-memory store; data is lost on exit")
		return kv.NewMemoryStore(), nil

	case config.DriverSQLite, config.DriverPostgres:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg.DB, logg, client); err != nil {
			return nil, multierr.Append(fmt.Errorf("migrate database: %w", err), client.Close())
		}
		return client, nil

	case config.DriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
