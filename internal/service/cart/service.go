package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/logging"
	"github.com/danrawss/techtrove/internal/pricing"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo    cartRepo
	catalog catalog
	counts  invalidator
	logger  *slog.Logger
}

type cartRepo interface {
	AddLine(ctx context.Context, userID string, product domain.Product, quantity int) error
	RemoveLine(ctx context.Context, userID, productName string) (bool, error)
	SetQuantity(ctx context.Context, userID, productName string, quantity int) error
	ListLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	Count(ctx context.Context, userID string) (int, error)
}

type catalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
}

type invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

func New(repo cartRepo, catalog catalog, counts invalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, counts: counts, logger: logging.OrDiscard(logger)}
}

// AddItem puts quantity units of the product in the user's cart, priced at
// the catalog price if the line is new. It returns the cart item count.
func (s *Service) AddItem(ctx context.Context, userID string, productID int64, quantity int) (int, error) {
	if err := validateAdd(userID, quantity); err != nil {
		return 0, err
	}
	if productID <= 0 {
		return 0, fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return 0, lookupError(fmt.Sprintf("product %d", productID), err)
	}
	return s.add(ctx, userID, *product, quantity)
}

// AddItemByName is AddItem for callers that only know the catalog name.
func (s *Service) AddItemByName(ctx context.Context, userID, productName string, quantity int) (int, error) {
	if err := validateAdd(userID, quantity); err != nil {
		return 0, err
	}
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return 0, fmt.Errorf("%w: product name required", domain.ErrInvalidInput)
	}
	product, err := s.catalog.GetByName(ctx, productName)
	if err != nil {
		return 0, lookupError(fmt.Sprintf("product %q", productName), err)
	}
	return s.add(ctx, userID, *product, quantity)
}

func (s *Service) add(ctx context.Context, userID string, product domain.Product, quantity int) (int, error) {
	if err := s.repo.AddLine(ctx, userID, product, quantity); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return 0, err
		}
		return 0, persistence("add cart line", err)
	}
	s.invalidate(ctx, userID)
	return s.Count(ctx, userID)
}

func validateAdd(userID string, quantity int) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrUnauthorized
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if quantity > domain.MaxLineQuantity {
		return fmt.Errorf("%w: quantity must be at most %d", domain.ErrInvalidInput, domain.MaxLineQuantity)
	}
	return nil
}

func lookupError(what string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return persistence("lookup product", err)
}

// RemoveItem deletes the line for productName. Removing an absent line is
// not an error. It returns the new item count and cart total.
func (s *Service) RemoveItem(ctx context.Context, userID, productName string) (int, decimal.Decimal, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, decimal.Zero, domain.ErrUnauthorized
	}
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return 0, decimal.Zero, fmt.Errorf("%w: product name required", domain.ErrInvalidInput)
	}
	removed, err := s.repo.RemoveLine(ctx, userID, productName)
	if err != nil {
		return 0, decimal.Zero, persistence("remove cart line", err)
	}
	if removed {
		s.invalidate(ctx, userID)
	}
	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return summary.TotalItems, summary.TotalPrice, nil
}

// UpdateQuantity sets the line quantity. Zero or less removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productName string, quantity int) (*domain.CartSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, fmt.Errorf("%w: product name required", domain.ErrInvalidInput)
	}
	if quantity > domain.MaxLineQuantity {
		return nil, fmt.Errorf("%w: quantity must be at most %d", domain.ErrInvalidInput, domain.MaxLineQuantity)
	}
	if err := s.repo.SetQuantity(ctx, userID, productName, quantity); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("cart line %q: %w", productName, domain.ErrNotFound)
		}
		return nil, persistence("update cart line", err)
	}
	s.invalidate(ctx, userID)
	return s.Summary(ctx, userID)
}

func (s *Service) ListItems(ctx context.Context, userID string) ([]domain.CartLine, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	lines, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, persistence("list cart", err)
	}
	return lines, nil
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, domain.ErrUnauthorized
	}
	n, err := s.repo.Count(ctx, userID)
	if err != nil {
		return 0, persistence("count cart", err)
	}
	return n, nil
}

// Summary returns the lines with their item count and grand total.
func (s *Service) Summary(ctx context.Context, userID string) (*domain.CartSummary, error) {
	lines, err := s.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return &domain.CartSummary{
		Lines:      lines,
		TotalItems: pricing.ItemCount(lines),
		TotalPrice: pricing.Total(lines),
	}, nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.counts == nil {
		return
	}
	if err := s.counts.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("count cache invalidate failed", slog.String("user_id", userID), slog.Any("error", err))
	}
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}
