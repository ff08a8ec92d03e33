package order

import (
	"context"

	"github.com/danrawss/techtrove/internal/domain"
)

// Repository reads committed orders. Writes only happen through WriteOrder
// inside the checkout transaction.
type Repository interface {
	ListByOrderID(ctx context.Context, userID, orderID string) ([]domain.Order, error)
}
