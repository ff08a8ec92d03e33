package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/repository/cart"
	"github.com/danrawss/techtrove/internal/testdb"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func seedCart(t *testing.T, repo cart.Repository, userID string) {
	t.Helper()
	ctx := context.Background()
	widget := domain.Product{Name: "Widget", Price: decimal.RequireFromString("9.99")}
	gadget := domain.Product{Name: "Gadget", Price: decimal.RequireFromString("5.00")}
	if err := repo.AddLine(ctx, userID, widget, 2); err != nil {
		t.Fatalf("add widget: %v", err)
	}
	if err := repo.AddLine(ctx, userID, gadget, 1); err != nil {
		t.Fatalf("add gadget: %v", err)
	}
}

func drain(orderID string) func(ctx context.Context, tx Tx) error {
	return func(ctx context.Context, tx Tx) error {
		lines, err := tx.SnapshotCart(ctx)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		if err := tx.ClearCart(ctx, lines); err != nil {
			return err
		}
		return tx.WriteOrder(ctx, domain.OrderBatch{
			OrderID:    orderID,
			UserID:     lines[0].UserID,
			Lines:      lines,
			Shipping:   domain.ShippingInfo{FullName: "A", Address: "B", City: "C", PostalCode: "D", Phone: "E"},
			GrandTotal: decimal.RequireFromString("24.98"),
			OrderTime:  time.Now().UTC(),
		})
	}
}

func countOrders(t *testing.T, ctx context.Context, r *postgresRunner, userID string) int {
	t.Helper()
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(DISTINCT order_id) FROM orders WHERE user_id = $1`, userID).Scan(&n); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return n
}

func TestInUserTx_CommitsCartDrain(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	carts := cart.NewPostgres(pool)
	seedCart(t, carts, "u1")

	runner := NewPostgres(pool, time.Second, nil).(*postgresRunner)
	if err := runner.InUserTx(ctx, "u1", drain("order-1")); err != nil {
		t.Fatalf("InUserTx: %v", err)
	}

	if n, _ := carts.Count(ctx, "u1"); n != 0 {
		t.Fatalf("expected empty cart, got %d items", n)
	}
	if got := countOrders(t, ctx, runner, "u1"); got != 1 {
		t.Fatalf("expected 1 order, got %d", got)
	}
}

func TestInUserTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	carts := cart.NewPostgres(pool)
	seedCart(t, carts, "u1")

	runner := NewPostgres(pool, time.Second, nil).(*postgresRunner)
	boom := errors.New("writer down")
	err := runner.InUserTx(ctx, "u1", func(ctx context.Context, tx Tx) error {
		lines, err := tx.SnapshotCart(ctx)
		if err != nil {
			return err
		}
		if err := tx.ClearCart(ctx, lines); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected writer error, got %v", err)
	}

	if n, _ := carts.Count(ctx, "u1"); n != 3 {
		t.Fatalf("expected cart restored to 3 items, got %d", n)
	}
	if got := countOrders(t, ctx, runner, "u1"); got != 0 {
		t.Fatalf("expected no orders, got %d", got)
	}
}

func TestInUserTx_SerializesSameUser(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	carts := cart.NewPostgres(pool)
	seedCart(t, carts, "u1")

	runner := NewPostgres(pool, 5*time.Second, nil).(*postgresRunner)
	var g errgroup.Group
	for _, id := range []string{"order-a", "order-b"} {
		g.Go(func() error {
			return runner.InUserTx(ctx, "u1", drain(id))
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent checkouts: %v", err)
	}

	if got := countOrders(t, ctx, runner, "u1"); got != 1 {
		t.Fatalf("expected exactly 1 order, got %d", got)
	}
}

func TestInUserTx_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &postgresRunner{timeout: time.Second}
	called := false
	err := runner.InUserTx(ctx, "u1", func(context.Context, Tx) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatalf("expected fn not to run")
	}
}
