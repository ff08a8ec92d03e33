package checkout

import (
	"fmt"
	"strings"

	"github.com/danrawss/techtrove/internal/domain"
	"github.com/danrawss/techtrove/internal/pricing"
)

const confirmationSubject = "Your TechTrove Order Confirmation"

// Confirmation renders the subject and plain-text body sent to the shopper.
func Confirmation(b domain.OrderBatch) (string, string) {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", b.Shipping.FullName)
	body.WriteString("Thank you for your order! Here are the details:\n\n")
	body.WriteString("Shipping Address:\n")
	fmt.Fprintf(&body, "%s\n%s, %s\n\n", b.Shipping.Address, b.Shipping.City, b.Shipping.PostalCode)
	body.WriteString("Order Summary:\n")
	for _, l := range b.Lines {
		fmt.Fprintf(&body, "- %s x %d - %s\n", l.ProductName, l.Quantity, pricing.Format(pricing.LineTotal(l)))
	}
	fmt.Fprintf(&body, "\nTotal: %s\n\n", pricing.Format(b.GrandTotal))
	fmt.Fprintf(&body, "Order number: %s\n\n", b.OrderID)
	body.WriteString("We hope to see you again soon!\n\nTechTrove Team")
	return confirmationSubject, body.String()
}
