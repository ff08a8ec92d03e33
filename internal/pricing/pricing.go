// Package pricing computes line and cart totals. All arithmetic is decimal;
// amounts are never accumulated in binary floating point.
package pricing

import (
	"github.com/danrawss/techtrove/internal/domain"
	"github.com/shopspring/decimal"
)

// LineTotal returns unit price times quantity.
func LineTotal(l domain.CartLine) decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total returns the grand total of lines. An empty slice totals zero.
func Total(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total
}

// ItemCount sums quantities.
func ItemCount(lines []domain.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Format renders an amount as dollars with two decimals, e.g. "$24.98".
func Format(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
