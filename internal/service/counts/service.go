// Package counts serves the cart and wishlist badge numbers shown on every
// page, reading through the count cache.
package counts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danrawss/techtrove/internal/cache"
	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/logging"
)

type counter interface {
	Count(ctx context.Context, userID string) (int, error)
}

type Service struct {
	cart     counter
	wishlist counter
	cache    cache.Counts
	logger   *slog.Logger
}

func New(cart, wishlist counter, c cache.Counts, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{cart: cart, wishlist: wishlist, cache: c, logger: logging.OrDiscard(logger)}
}

// Counts returns the user's badge counts. Cache errors are logged and the
// counts are read from storage instead. A miss is written back only if no
// mutation invalidated the user while storage was being read.
func (s *Service) Counts(ctx context.Context, userID string) (domain.Counts, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Counts{}, domain.ErrUnauthorized
	}
	cached, stamp, ok, cacheErr := s.cache.Get(ctx, userID)
	if cacheErr != nil {
		s.logger.Warn("count cache read failed", slog.String("user_id", userID), slog.Any("error", cacheErr))
	} else if ok {
		return cached, nil
	}

	cartN, err := s.cart.Count(ctx, userID)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("%w: count cart: %v", domain.ErrPersistence, err)
	}
	wishN, err := s.wishlist.Count(ctx, userID)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("%w: count wishlist: %v", domain.ErrPersistence, err)
	}
	c := domain.Counts{CartItems: cartN, WishlistItems: wishN}
	if cacheErr != nil {
		return c, nil
	}
	if stored, err := s.cache.Set(ctx, userID, stamp, c); err != nil {
		s.logger.Warn("count cache write failed", slog.String("user_id", userID), slog.Any("error", err))
	} else if !stored {
		s.logger.Debug("count cache write skipped, invalidated during read", slog.String("user_id", userID))
	}
	return c, nil
}
