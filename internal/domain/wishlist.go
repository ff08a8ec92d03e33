package domain

import "time"

// WishlistEntry is a saved product reference, joined with the catalog row
// it points at.
type WishlistEntry struct {
	UserID    string    `json:"-"`
	ProductID int64     `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
	Product   Product   `json:"product"`
}
