package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"tour-planner-service/internal/adapters/repositories"
	"tour-planner-service/internal/adapters/seed"
	"tour-planner-service/internal/config"
	"tour-planner-service/internal/platform/db"
	"tour-planner-service/internal/platform/obs"

	"github.com/joho/godotenv"
)

const usage = `usage: dbtool [flags] <command>

commands:
  migrate   apply pending schema migrations
  seed      upsert places from a JSON or CSV seed file
  setup     migrate, then seed
`

func main() {
	seedPath := flag.String("seed", "", "seed file path (defaults to SEED_PATH)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), flag.Arg(0), *seedPath); err != nil {
		slog.Error("dbtool failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd, seedPath string) error {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(obs.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	if seedPath == "" {
		seedPath = cfg.SeedPath
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	switch cmd {
	case "migrate":
		return db.Migrate(ctx, sqlDB)
	case "seed":
		return seedPlaces(ctx, sqlDB, seedPath)
	case "setup":
		if err := db.Migrate(ctx, sqlDB); err != nil {
			return err
		}
		return seedPlaces(ctx, sqlDB, seedPath)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func seedPlaces(ctx context.Context, sqlDB *sql.DB, path string) error {
	places, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	repo := repositories.NewPostgresPlaceRepository(sqlDB)
	if err := repo.UpsertPlaces(ctx, places); err != nil {
		return fmt.Errorf("seed places: %w", err)
	}

	slog.Info("seeding complete", "path", path, "places", len(places))
	return nil
}
