package product

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, product_name, brand, category, product_price, image_url, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger)}
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.DebugContext(ctx, "product repo: get not found", "id", id)
		} else {
			r.logger.ErrorContext(ctx, "product repo: get", "id", id, "error", err)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE product_name = $1`, name))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		r.logger.ErrorContext(ctx, "product repo: get by name", "name", name, "error", err)
	}
	return p, err
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (product_name, brand, category, product_price, image_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (product_name) DO UPDATE SET
    brand = EXCLUDED.brand,
    category = EXCLUDED.category,
    product_price = EXCLUDED.product_price,
    image_url = EXCLUDED.image_url
RETURNING ` + productColumns
	out, err := scanProduct(r.pool.QueryRow(ctx, q, p.Name, p.Brand, p.Category, p.Price, p.ImageURL))
	if err != nil {
		r.logger.ErrorContext(ctx, "product repo: upsert", "name", p.Name, "error", err)
		return nil, err
	}
	r.logger.DebugContext(ctx, "product repo: upserted", "name", out.Name, "id", out.ID)
	return out, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.Price, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
