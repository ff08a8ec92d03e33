package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the core's projection of a catalog entry.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"product_name"`
	Brand     string          `json:"brand,omitempty"`
	Category  string          `json:"category,omitempty"`
	Price     decimal.Decimal `json:"product_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
