package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const insertOrderRow = `
INSERT INTO orders (
    order_id, user_id, product_name, product_price, quantity, total_price,
    full_name, address, city, postal_code, phone, email, order_time
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

// WriteOrder inserts one row per line of b. It must run inside the
// transaction that drains the cart; any error leaves tx unusable and the
// caller rolls back.
func WriteOrder(ctx context.Context, tx pgx.Tx, b domain.OrderBatch) error {
	if len(b.Lines) == 0 {
		return errors.New("order has no lines")
	}
	rows := b.Rows()
	batch := &pgx.Batch{}
	for _, o := range rows {
		batch.Queue(insertOrderRow,
			o.OrderID,
			o.UserID,
			o.ProductName,
			o.UnitPrice,
			o.Quantity,
			o.OrderTotal,
			o.Shipping.FullName,
			o.Shipping.Address,
			o.Shipping.City,
			o.Shipping.PostalCode,
			o.Shipping.Phone,
			nullIfEmpty(o.Shipping.Email),
			o.OrderTime,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range rows {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert order line %d (%s): %w", i, rows[i].ProductName, err)
		}
	}
	return br.Close()
}

func (r *postgresRepo) ListByOrderID(ctx context.Context, userID, orderID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, order_id, user_id, product_name, product_price, quantity, total_price,
       full_name, address, city, postal_code, phone, COALESCE(email, ''), order_time
FROM orders
WHERE user_id = $1 AND order_id = $2
ORDER BY id ASC
`, userID, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID,
			&o.OrderID,
			&o.UserID,
			&o.ProductName,
			&o.UnitPrice,
			&o.Quantity,
			&o.OrderTotal,
			&o.Shipping.FullName,
			&o.Shipping.Address,
			&o.Shipping.City,
			&o.Shipping.PostalCode,
			&o.Shipping.Phone,
			&o.Shipping.Email,
			&o.OrderTime,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
