package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// AddLine inserts a line priced at the product's current price, or adds
// quantity to the existing line. An existing line keeps its original price.
// A merge that would push the line past domain.MaxLineQuantity changes
// nothing and returns domain.ErrInvalidInput.
func (r *postgresRepo) AddLine(ctx context.Context, userID string, product domain.Product, quantity int) error {
	if quantity <= 0 || quantity > domain.MaxLineQuantity {
		return fmt.Errorf("%w: quantity %d outside 1..%d", domain.ErrInvalidInput, quantity, domain.MaxLineQuantity)
	}
	cmd, err := r.pool.Exec(ctx, `
INSERT INTO cart_lines (user_id, product_name, product_price, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_name) DO UPDATE
SET quantity = cart_lines.quantity + EXCLUDED.quantity
WHERE cart_lines.quantity + EXCLUDED.quantity <= $5
`, userID, product.Name, product.Price, quantity, domain.MaxLineQuantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s line would exceed %d units", domain.ErrInvalidInput, product.Name, domain.MaxLineQuantity)
	}
	return nil
}

func (r *postgresRepo) RemoveLine(ctx context.Context, userID, productName string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE user_id = $1 AND product_name = $2
`, userID, productName)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// SetQuantity overwrites a line's quantity. Zero or less removes the line.
func (r *postgresRepo) SetQuantity(ctx context.Context, userID, productName string, quantity int) error {
	if quantity <= 0 {
		_, err := r.RemoveLine(ctx, userID, productName)
		return err
	}
	if quantity > domain.MaxLineQuantity {
		return fmt.Errorf("%w: quantity %d above %d", domain.ErrInvalidInput, quantity, domain.MaxLineQuantity)
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_lines
SET quantity = $3
WHERE user_id = $1 AND product_name = $2
`, userID, productName, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return queryLines(ctx, r.pool, `
SELECT id, user_id, product_name, product_price, quantity, created_at
FROM cart_lines
WHERE user_id = $1
ORDER BY id ASC
`, userID)
}

func (r *postgresRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(quantity), 0)::bigint
FROM cart_lines
WHERE user_id = $1
`, userID).Scan(&n)
	return int(n), err
}

// LockLines returns the user's lines and row-locks them until tx ends.
func LockLines(ctx context.Context, tx pgx.Tx, userID string) ([]domain.CartLine, error) {
	return queryLines(ctx, tx, `
SELECT id, user_id, product_name, product_price, quantity, created_at
FROM cart_lines
WHERE user_id = $1
ORDER BY id ASC
FOR UPDATE
`, userID)
}

// DeleteLines removes exactly the given lines of the user inside tx. Lines
// added after the snapshot was taken are left alone.
func DeleteLines(ctx context.Context, tx pgx.Tx, userID string, lines []domain.CartLine) error {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
	}
	cmd, err := tx.Exec(ctx, `
DELETE FROM cart_lines
WHERE user_id = $1 AND id = ANY($2)
`, userID, ids)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() != int64(len(ids)) {
		return errors.New("cart changed while checking out")
	}
	return nil
}

func queryLines(ctx context.Context, q querier, sql string, args ...any) ([]domain.CartLine, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductName, &l.UnitPrice, &l.Quantity, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
