package cart

import (
	"context"

	"github.com/danrawss/techtrove/internal/domain"
)

type Repository interface {
	AddLine(ctx context.Context, userID string, product domain.Product, quantity int) error
	RemoveLine(ctx context.Context, userID, productName string) (bool, error)
	SetQuantity(ctx context.Context, userID, productName string, quantity int) error
	ListLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	Count(ctx context.Context, userID string) (int, error)
}
