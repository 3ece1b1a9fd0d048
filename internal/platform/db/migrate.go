package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"tour-planner-service/migrations"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"
)

// Migrate applies every pending embedded migration. A Postgres advisory lock
// serializes concurrent callers.
func Migrate(ctx context.Context, db *sql.DB) error {
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return fmt.Errorf("migrate: create session locker: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS, goose.WithSessionLocker(locker))
	if err != nil {
		return fmt.Errorf("migrate: create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: apply migrations: %w", err)
	}

	for _, r := range results {
		slog.InfoContext(ctx, "migration applied", "source", r.Source.Path, "dur_ms", r.Duration.Milliseconds())
	}

	return nil
}
