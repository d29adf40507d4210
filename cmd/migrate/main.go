package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/novastore/pkg/config"
	"github.com/angelmondragon/novastore/pkg/db"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/logger"
	"github.com/angelmondragon/novastore/pkg/migrate"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory used by create and validate")

	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	embedded := flag.Bool("embedded", false, "validate the migrations compiled into the binary instead of -dir")

	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"dir":    *dir,
		"driver": cfg.Store.NormalizedDriver(),
	})

	// Commands that do NOT require DB
	switch *cmd {
	case "create":
		if *name == "" {
			fmt.Fprintln(os.Stderr, "missing -name for create")
			os.Exit(1)
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create migration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		var err error
		if *embedded {
			err = migrate.ValidateEmbedded()
		} else {
			err = migrate.ValidateFS(os.DirFS(*dir))
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	driver := cfg.Store.NormalizedDriver()
	if driver != config.DriverSQLite && driver != config.DriverPostgres {
		fmt.Fprintf(os.Stderr, "store driver %q has no schema to migrate\n", driver)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, driver, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)
	dialect := dbClient.Dialect()

	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up", "down", "status":
		if err := migrate.Run(ctx, sqlDB, dialect, *cmd); err != nil {
			dbClient.Close()
			fail(ctx, logg, fmt.Sprintf("goose %s failed", *cmd), err)
		}

	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, dialect, *version); err != nil {
			dbClient.Close()
			fail(ctx, logg, "goose version migrate failed", err)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	fail(ctx, logg, fmt.Sprintf("resource not working: %s", resource), err)
}

func fail(ctx context.Context, logg *logger.Logger, msg string, err error) {
	logg.Error(logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), msg, err)
	os.Exit(1)
}
