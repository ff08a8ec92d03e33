package checkout

import (
	"context"

	"github.com/danrawss/techtrove/internal/domain"
)

// Tx is the set of writes allowed while a user's checkout holds its lock.
type Tx interface {
	SnapshotCart(ctx context.Context) ([]domain.CartLine, error)
	ClearCart(ctx context.Context, lines []domain.CartLine) error
	WriteOrder(ctx context.Context, batch domain.OrderBatch) error
}

// Runner executes fn in a single transaction serialized per user. If fn
// returns an error nothing it did is kept.
type Runner interface {
	InUserTx(ctx context.Context, userID string, fn func(ctx context.Context, tx Tx) error) error
}
