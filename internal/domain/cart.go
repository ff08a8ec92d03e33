package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps the units held on a single cart line.
const MaxLineQuantity = 10000

// CartLine is one product held in a user's cart. UnitPrice is the catalog
// price captured when the product was first added.
type CartLine struct {
	ID          int64           `json:"-"`
	UserID      string          `json:"-"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"product_price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"added_at"`
}

// CartSummary is the cart view served to the cart and checkout pages.
type CartSummary struct {
	Lines      []CartLine      `json:"cart_items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Counts is the badge read-model shown on every page.
type Counts struct {
	CartItems     int `json:"cart_count"`
	WishlistItems int `json:"wishlist_count"`
}
