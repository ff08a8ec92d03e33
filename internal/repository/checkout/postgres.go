package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/logging"
	"github.com/danrawss/techtrove/internal/repository/cart"
	"github.com/danrawss/techtrove/internal/repository/order"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 5 * time.Second

type postgresRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, timeout time.Duration, logger *slog.Logger) Runner {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &postgresRunner{pool: pool, timeout: timeout, logger: logging.OrDiscard(logger)}
}

// InUserTx takes a transaction-scoped advisory lock on the user id before
// calling fn, so two checkouts for one user run one after the other. The
// transaction is detached from ctx cancellation and bounded by the runner
// timeout instead; once it starts it either commits or rolls back here.
func (r *postgresRunner) InUserTx(ctx context.Context, userID string, fn func(ctx context.Context, tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	dbTx, err := r.pool.Begin(txCtx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrPersistence, err)
	}
	defer func() {
		if rbErr := dbTx.Rollback(txCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.Warn("checkout rollback failed", slog.String("user_id", userID), slog.Any("error", rbErr))
		}
	}()

	if _, err := dbTx.Exec(txCtx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, userID); err != nil {
		return fmt.Errorf("%w: lock cart: %v", domain.ErrPersistence, err)
	}

	if err := fn(txCtx, &pgTx{tx: dbTx, userID: userID}); err != nil {
		if errors.Is(txCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: checkout timed out after %s: %v", domain.ErrPersistence, r.timeout, err)
		}
		return err
	}

	if err := dbTx.Commit(txCtx); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrPersistence, err)
	}
	return nil
}

type pgTx struct {
	tx     pgx.Tx
	userID string
}

func (t *pgTx) SnapshotCart(ctx context.Context) ([]domain.CartLine, error) {
	lines, err := cart.LockLines(ctx, t.tx, t.userID)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot cart: %v", domain.ErrPersistence, err)
	}
	return lines, nil
}

func (t *pgTx) ClearCart(ctx context.Context, lines []domain.CartLine) error {
	if err := cart.DeleteLines(ctx, t.tx, t.userID, lines); err != nil {
		return fmt.Errorf("%w: clear cart: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (t *pgTx) WriteOrder(ctx context.Context, batch domain.OrderBatch) error {
	if err := order.WriteOrder(ctx, t.tx, batch); err != nil {
		return fmt.Errorf("%w: write order: %v", domain.ErrPersistence, err)
	}
	return nil
}
