package wishlist

import (
	"context"

	"github.com/danrawss/techtrove/internal/domain"
)

type Repository interface {
	Add(ctx context.Context, userID string, productID int64) error
	Remove(ctx context.Context, userID string, productID int64) error
	List(ctx context.Context, userID string) ([]domain.WishlistEntry, error)
	Count(ctx context.Context, userID string) (int, error)
}
