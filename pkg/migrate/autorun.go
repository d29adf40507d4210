package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/novastore/pkg/config"
	"github.com/angelmondragon/novastore/pkg/db"
	"github.com/angelmondragon/novastore/pkg/logger"
)

// MaybeRun applies pending migrations when auto-migration is enabled.
func MaybeRun(ctx context.Context, cfg config.DBConfig, logg *logger.Logger, client *db.Client) error {
	if !cfg.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "dialect", client.Dialect())
	logg.Info(ctx, "running goose migrations")

	if err := Up(ctx, sqlDB, client.Dialect()); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
