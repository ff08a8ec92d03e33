package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/danrawss/techtrove/internal/auth"
	"github.com/danrawss/techtrove/internal/cache"
	"github.com/danrawss/techtrove/internal/config"
	"github.com/danrawss/techtrove/internal/db"
	"github.com/danrawss/techtrove/internal/httpserver"
	"github.com/danrawss/techtrove/internal/logging"
	"github.com/danrawss/techtrove/internal/metrics"
	"github.com/danrawss/techtrove/internal/notify"
	cartrepo "github.com/danrawss/techtrove/internal/repository/cart"
	checkoutrepo "github.com/danrawss/techtrove/internal/repository/checkout"
	orderrepo "github.com/danrawss/techtrove/internal/repository/order"
	productrepo "github.com/danrawss/techtrove/internal/repository/product"
	wishlistrepo "github.com/danrawss/techtrove/internal/repository/wishlist"
	cartsvc "github.com/danrawss/techtrove/internal/service/cart"
	checkoutsvc "github.com/danrawss/techtrove/internal/service/checkout"
	countssvc "github.com/danrawss/techtrove/internal/service/counts"
	wishlistsvc "github.com/danrawss/techtrove/internal/service/wishlist"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel, cfg.LogFile).With(slog.String("component", "api"))

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, "techtrove-api")
	if err != nil {
		fatal(logger, "connect to db", err)
	}
	defer dbpool.Close()

	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		fatal(logger, "init auth", err)
	}

	var counts cache.Counts = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, counts read from postgres until it recovers", slog.Any("error", err))
		}
		counts = cache.NewRedis(rdb, cfg.CountCacheTTL)
	}

	sender, err := notify.FromConfig(cfg.Notify, logger)
	if err != nil {
		fatal(logger, "init notifications", err)
	}
	if c, ok := sender.(notify.Closer); ok {
		defer c.Close()
	}

	m := metrics.New()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	wishlistRepo := wishlistrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	runner := checkoutrepo.NewPostgres(dbpool, cfg.CheckoutTxTimeout, logger)

	cartService := cartsvc.New(cartRepo, productRepo, counts, logger)
	wishlistService := wishlistsvc.New(wishlistRepo, counts, logger)
	countsService := countssvc.New(cartRepo, wishlistRepo, counts, logger)
	checkoutService := checkoutsvc.New(runner, orderRepo, sender, counts, m, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Auth:        verifier,
		Cart:        cartService,
		Wishlist:    wishlistService,
		Checkout:    checkoutService,
		Counts:      countsService,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		fatal(logger, "init server", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", slog.Any("error", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("server stopped")
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
