package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/metrics"
	checkoutsvc "github.com/danrawss/techtrove/internal/service/checkout"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type tokenVerifier interface {
	UserID(token string) (string, error)
}

type cartService interface {
	AddItem(ctx context.Context, userID string, productID int64, quantity int) (int, error)
	AddItemByName(ctx context.Context, userID, productName string, quantity int) (int, error)
	RemoveItem(ctx context.Context, userID, productName string) (int, decimal.Decimal, error)
	UpdateQuantity(ctx context.Context, userID, productName string, quantity int) (*domain.CartSummary, error)
	Summary(ctx context.Context, userID string) (*domain.CartSummary, error)
}

type wishlistService interface {
	Add(ctx context.Context, userID string, productID int64) (int, error)
	Remove(ctx context.Context, userID string, productID int64) (int, error)
	List(ctx context.Context, userID string) ([]domain.WishlistEntry, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, userID string, shipping domain.ShippingInfo) (*checkoutsvc.Result, error)
	Order(ctx context.Context, userID, orderID string) ([]domain.Order, error)
}

type countsService interface {
	Counts(ctx context.Context, userID string) (domain.Counts, error)
}

// Deps are the services the router dispatches to.
type Deps struct {
	Auth        tokenVerifier
	Cart        cartService
	Wishlist    wishlistService
	Checkout    checkoutService
	Counts      countsService
	Metrics     *metrics.Metrics
	CORSOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.Auth == nil:
		return errors.New("auth verifier required")
	case d.Cart == nil:
		return errors.New("cart service required")
	case d.Wishlist == nil:
		return errors.New("wishlist service required")
	case d.Checkout == nil:
		return errors.New("checkout service required")
	case d.Counts == nil:
		return errors.New("counts service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *slog.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestID(), requestLogger(logger), gin.Recovery())
	if deps.Metrics != nil {
		router.Use(observe(deps.Metrics))
	}
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
			ExposeHeaders:    []string{"Content-Length", requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	h := &handlers{deps: deps, logger: logger}
	authed := router.Group("/", authMiddleware(deps.Auth))
	authed.GET("/cart", h.viewCart)
	authed.POST("/cart/add", h.addToCart)
	authed.POST("/cart/remove", h.removeFromCart)
	authed.POST("/cart/update", h.updateCart)
	authed.GET("/wishlist", h.viewWishlist)
	authed.POST("/wishlist/add", h.addToWishlist)
	authed.POST("/wishlist/remove", h.removeFromWishlist)
	authed.GET("/checkout", h.viewCheckout)
	authed.POST("/checkout", h.checkout)
	authed.GET("/orders/:orderID", h.viewOrder)
	authed.GET("/counts", h.counts)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *slog.Logger
}
