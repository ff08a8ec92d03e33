package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/danrawss/techtrove/internal/config"
	"github.com/danrawss/techtrove/internal/db"
	"github.com/danrawss/techtrove/internal/logging"
	"github.com/danrawss/techtrove/internal/migrate"
)

func main() {
	down := flag.Int("down", 0, "number of schema versions to roll back instead of migrating up")
	flag.Parse()

	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel, cfg.LogFile).With(slog.String("component", "migrate"))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, "techtrove-migrate")
	if err != nil {
		logger.Error("connect db", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if *down > 0 {
		err = migrate.Rollback(ctx, pool, *down)
	} else {
		err = migrate.Apply(ctx, pool)
	}
	if err != nil {
		logger.Error("migrate", slog.Int("down", *down), slog.Any("error", err))
		pool.Close()
		os.Exit(1)
	}

	version, dirty, ok, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Warn("read schema version", slog.Any("error", err))
		return
	}
	logger.Info("schema migrated", slog.Bool("versioned", ok), slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
}
