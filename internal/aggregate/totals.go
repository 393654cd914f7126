package aggregate

import (
	"github.com/ledgerline/receipt-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Totals holds the computed money aggregates for one receipt.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute recomputes the subtotal from the item list and derives the grand
// total. The subtotal never trusts the stored value; taxAmount and
// discount are taken as given because tax rates and discounts are business
// decisions, not facts derivable from item data. Items missing a line
// total contribute 0.
func Compute(items []models.ReceiptItem, taxAmount, discount float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Amount()))
	}

	tax := decimal.NewFromFloat(taxAmount)
	disc := decimal.NewFromFloat(discount)

	return Totals{
		Subtotal: subtotal,
		Discount: disc,
		Tax:      tax,
		Total:    subtotal.Sub(disc).Add(tax),
	}
}
