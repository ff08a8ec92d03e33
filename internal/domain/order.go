package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ShippingInfo carries the checkout form. Email is optional.
type ShippingInfo struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Normalize trims surrounding whitespace from every field.
func (s ShippingInfo) Normalize() ShippingInfo {
	return ShippingInfo{
		FullName:   strings.TrimSpace(s.FullName),
		Address:    strings.TrimSpace(s.Address),
		City:       strings.TrimSpace(s.City),
		PostalCode: strings.TrimSpace(s.PostalCode),
		Phone:      strings.TrimSpace(s.Phone),
		Email:      strings.TrimSpace(s.Email),
	}
}

// MissingFields lists the mandatory shipping fields that are empty, using
// the names the checkout form submits.
func (s ShippingInfo) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"fullName", s.FullName},
		{"address", s.Address},
		{"city", s.City},
		{"postalCode", s.PostalCode},
		{"phone", s.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Order is one persisted order row. Every row of a checkout shares OrderID,
// OrderTime, OrderTotal and the shipping fields.
type Order struct {
	ID          int64           `json:"-"`
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"-"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"product_price"`
	Quantity    int             `json:"quantity"`
	OrderTotal  decimal.Decimal `json:"total_price"`
	Shipping    ShippingInfo    `json:"shipping"`
	OrderTime   time.Time       `json:"order_time"`
}

// OrderBatch is everything the order writer needs for one checkout.
type OrderBatch struct {
	OrderID    string
	UserID     string
	Lines      []CartLine
	Shipping   ShippingInfo
	GrandTotal decimal.Decimal
	OrderTime  time.Time
}

// Rows expands the batch into one Order per cart line.
func (b OrderBatch) Rows() []Order {
	rows := make([]Order, 0, len(b.Lines))
	for _, l := range b.Lines {
		rows = append(rows, Order{
			OrderID:     b.OrderID,
			UserID:      b.UserID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			OrderTotal:  b.GrandTotal,
			Shipping:    b.Shipping,
			OrderTime:   b.OrderTime,
		})
	}
	return rows
}
