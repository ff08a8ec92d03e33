package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/testdb"
	"github.com/shopspring/decimal"
)

func widget() domain.Product {
	return domain.Product{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")}
}

func TestPostgres_AddLineMergesByProduct(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool)

	if err := repo.AddLine(ctx, "u1", widget(), 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	repriced := widget()
	repriced.Price = decimal.RequireFromString("12.00")
	if err := repo.AddLine(ctx, "u1", repriced, 1); err != nil {
		t.Fatalf("AddLine again: %v", err)
	}

	lines, err := repo.ListLines(ctx, "u1")
	if err != nil {
		t.Fatalf("ListLines: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", lines)
	}
	if !lines[0].UnitPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected price snapshot kept, got %s", lines[0].UnitPrice)
	}

	n, err := repo.Count(ctx, "u1")
	if err != nil || n != 2 {
		t.Fatalf("Count: %d %v", n, err)
	}
}

func TestPostgres_RemoveAndSetQuantity(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool)

	removed, err := repo.RemoveLine(ctx, "u1", "Widget")
	if err != nil || removed {
		t.Fatalf("remove on empty cart: %v %v", removed, err)
	}

	if err := repo.AddLine(ctx, "u1", widget(), 3); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := repo.SetQuantity(ctx, "u1", "Widget", 5); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if n, _ := repo.Count(ctx, "u1"); n != 5 {
		t.Fatalf("expected 5, got %d", n)
	}
	if err := repo.SetQuantity(ctx, "u1", "Gadget", 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.SetQuantity(ctx, "u1", "Widget", 0); err != nil {
		t.Fatalf("SetQuantity zero: %v", err)
	}
	if n, _ := repo.Count(ctx, "u1"); n != 0 {
		t.Fatalf("expected empty cart, got %d", n)
	}
}

func TestLockAndDeleteLines(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool)
	if err := repo.AddLine(ctx, "u1", widget(), 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	lines, err := LockLines(ctx, tx, "u1")
	if err != nil || len(lines) != 1 {
		t.Fatalf("LockLines: %+v %v", lines, err)
	}
	if err := DeleteLines(ctx, tx, "u1", lines); err != nil {
		t.Fatalf("DeleteLines: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if n, _ := repo.Count(ctx, "u1"); n != 0 {
		t.Fatalf("expected empty cart, got %d", n)
	}
}

func TestPostgres_AddLineCapsQuantity(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool)

	if err := repo.AddLine(ctx, "u1", widget(), domain.MaxLineQuantity+1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for oversize insert, got %v", err)
	}
	if err := repo.AddLine(ctx, "u1", widget(), domain.MaxLineQuantity-1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := repo.AddLine(ctx, "u1", widget(), 2); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for merge past the cap, got %v", err)
	}
	if err := repo.SetQuantity(ctx, "u1", "Widget", domain.MaxLineQuantity+1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for oversize set, got %v", err)
	}
	if n, err := repo.Count(ctx, "u1"); err != nil || n != domain.MaxLineQuantity-1 {
		t.Fatalf("expected line untouched, got %d %v", n, err)
	}
}

func TestPostgres_CountSumsPastInt4(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool)

	// Lines are capped, so seed many full ones directly to push the sum past int4.
	if _, err := pool.Exec(ctx, `
INSERT INTO cart_lines (user_id, product_name, product_price, quantity)
SELECT 'u1', 'p' || g, 1.00, $1::int
FROM generate_series(1, 220000) AS g
`, domain.MaxLineQuantity); err != nil {
		t.Fatalf("seed lines: %v", err)
	}
	n, err := repo.Count(ctx, "u1")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if want := 220000 * domain.MaxLineQuantity; n != want {
		t.Fatalf("expected %d, got %d", want, n)
	}
}
