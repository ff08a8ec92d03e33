package seed

import (
	"context"
	"fmt"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type productSeed struct {
	Name     string
	Brand    string
	Category string
	Price    string
	Image    string
}

var catalog = []productSeed{
	{"iPhone 15 Pro", "Apple", "Smartphones", "999.00", "/static/images/apple/iphone-15-pro.png"},
	{"iPhone 15", "Apple", "Smartphones", "799.00", "/static/images/apple/iphone-15.png"},
	{"MacBook Air 13", "Apple", "Laptops", "1099.00", "/static/images/apple/macbook-air-13.png"},
	{"AirPods Pro", "Apple", "Audio", "249.00", "/static/images/apple/airpods-pro.png"},
	{"Galaxy S24 Ultra", "Samsung", "Smartphones", "1299.99", "/static/images/samsung/galaxy-s24-ultra.png"},
	{"Galaxy Tab S9", "Samsung", "Tablets", "799.99", "/static/images/samsung/galaxy-tab-s9.png"},
	{"Galaxy Buds2 Pro", "Samsung", "Audio", "229.99", "/static/images/samsung/galaxy-buds2-pro.png"},
	{"Xiaomi 14", "Xiaomi", "Smartphones", "899.00", "/static/images/xiaomi/xiaomi-14.png"},
	{"Redmi Note 13", "Xiaomi", "Smartphones", "279.00", "/static/images/xiaomi/redmi-note-13.png"},
	{"Xiaomi Smart Band 8", "Xiaomi", "Wearables", "49.99", "/static/images/xiaomi/smart-band-8.png"},
}

// Apply upserts the demo catalog. It is idempotent: products are keyed by
// name and re-running refreshes their price and image.
func Apply(ctx context.Context, w ProductWriter) (int, error) {
	for _, s := range catalog {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return 0, fmt.Errorf("price for %s: %w", s.Name, err)
		}
		if _, err := w.Upsert(ctx, domain.Product{
			Name:     s.Name,
			Brand:    s.Brand,
			Category: s.Category,
			Price:    price,
			ImageURL: s.Image,
		}); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", s.Name, err)
		}
	}
	return len(catalog), nil
}
