package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"github.com/angelmondragon/novastore/pkg/migrate/migrations"
	"github.com/pressly/goose/v3"
)

// DefaultDir is where `-cmd=create` writes new migration files.
const DefaultDir = "pkg/migrate/migrations"

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

func prepare(dialect string) error {
	if dialect == "" {
		return fmt.Errorf("dialect is required")
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Run executes a goose command against the embedded migrations.
func Run(ctx context.Context, db *sql.DB, dialect string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := prepare(dialect); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	return Run(ctx, db, dialect, "up")
}

// Version reports the current schema version.
func Version(db *sql.DB, dialect string) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("db is required")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := prepare(dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, dialect string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := prepare(dialect); err != nil {
		return err
	}

	current, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, db, ".", target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
		return nil
	default:
		if err := goose.DownToContext(ctx, db, ".", target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
		return nil
	}
}
