package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/danrawss/techtrove/internal/config"
	"github.com/danrawss/techtrove/internal/db"
	"github.com/danrawss/techtrove/internal/logging"
	productrepo "github.com/danrawss/techtrove/internal/repository/product"
	"github.com/danrawss/techtrove/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel, cfg.LogFile).With(slog.String("component", "seed"))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, "techtrove-seed")
	if err != nil {
		logger.Error("connect db", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	n, err := seed.Apply(ctx, productrepo.NewPostgres(pool, logger))
	if err != nil {
		logger.Error("seed apply", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("seed applied", slog.Int("products", n))
}
