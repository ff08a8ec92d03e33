package wishlist

import (
	"context"
	"errors"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Add is idempotent. An unknown product surfaces as domain.ErrNotFound via
// the foreign key.
func (r *postgresRepo) Add(ctx context.Context, userID string, productID int64) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO wishlist_entries (user_id, product_id)
VALUES ($1, $2)
ON CONFLICT (user_id, product_id) DO NOTHING
`, userID, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID string, productID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wishlist_entries WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}

func (r *postgresRepo) List(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT w.user_id, w.product_id, w.created_at,
       p.id, p.product_name, p.brand, p.category, p.product_price, p.image_url, p.created_at
FROM wishlist_entries w
JOIN products p ON p.id = w.product_id
WHERE w.user_id = $1
ORDER BY w.created_at ASC, p.id ASC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WishlistEntry
	for rows.Next() {
		var e domain.WishlistEntry
		p := &e.Product
		if err := rows.Scan(&e.UserID, &e.ProductID, &e.AddedAt,
			&p.ID, &p.Name, &p.Brand, &p.Category, &p.Price, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*)::int FROM wishlist_entries WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}
