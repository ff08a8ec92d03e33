package product

import (
	"context"

	"github.com/danrawss/techtrove/internal/domain"
)

// Repository is the core's read path into the catalog, plus the upsert
// used by the seeder and the CSV importer.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
