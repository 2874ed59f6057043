package pricing

import (
	"github.com/shopspring/decimal"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	FreeShippingThreshold = decimal.RequireFromString("35.00")
	ShippingFee           = decimal.RequireFromString("5.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

// Breakdown is always derived from a set of line items and never stored
// on its own. Values are exact; round only when presenting.
type Breakdown struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

func ComputeBreakdown(items []cartdomain.LineItem) Breakdown {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	shipping := ShippingFee
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)

	return Breakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

func (b Breakdown) FreeShipping() bool {
	return b.Shipping.IsZero()
}

// Rounded returns the breakdown with every amount rounded half-up to
// cents, for display only.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Subtotal: b.Subtotal.Round(2),
		Shipping: b.Shipping.Round(2),
		Tax:      b.Tax.Round(2),
		Total:    b.Total.Round(2),
	}
}

// FormatMoney renders d as "$12.30".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatShipping renders a zero fee as FREE.
func FormatShipping(d decimal.Decimal) string {
	if d.IsZero() {
		return "FREE"
	}
	return FormatMoney(d)
}
