package wishlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/logging"
)

type Service struct {
	repo   wishlistRepo
	counts invalidator
	logger *slog.Logger
}

type wishlistRepo interface {
	Add(ctx context.Context, userID string, productID int64) error
	Remove(ctx context.Context, userID string, productID int64) error
	List(ctx context.Context, userID string) ([]domain.WishlistEntry, error)
	Count(ctx context.Context, userID string) (int, error)
}

type invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

func New(repo wishlistRepo, counts invalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, counts: counts, logger: logging.OrDiscard(logger)}
}

// Add saves the product for the user and returns the wishlist size. Adding
// a product twice keeps one entry.
func (s *Service) Add(ctx context.Context, userID string, productID int64) (int, error) {
	if err := validate(userID, productID); err != nil {
		return 0, err
	}
	if err := s.repo.Add(ctx, userID, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("%w: add wishlist entry: %v", domain.ErrPersistence, err)
	}
	s.invalidate(ctx, userID)
	return s.Count(ctx, userID)
}

// Remove drops the entry if present and returns the wishlist size.
func (s *Service) Remove(ctx context.Context, userID string, productID int64) (int, error) {
	if err := validate(userID, productID); err != nil {
		return 0, err
	}
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return 0, fmt.Errorf("%w: remove wishlist entry: %v", domain.ErrPersistence, err)
	}
	s.invalidate(ctx, userID)
	return s.Count(ctx, userID)
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list wishlist: %v", domain.ErrPersistence, err)
	}
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	return entries, nil
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, domain.ErrUnauthorized
	}
	n, err := s.repo.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: count wishlist: %v", domain.ErrPersistence, err)
	}
	return n, nil
}

func validate(userID string, productID int64) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrUnauthorized
	}
	if productID <= 0 {
		return fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.counts == nil {
		return
	}
	if err := s.counts.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("count cache invalidate failed", slog.String("user_id", userID), slog.Any("error", err))
	}
}
