// Package pricing derives subtotal, VAT, discount reduction and grand total
// from cart lines. All arithmetic stays in exact decimals; amounts are
// rounded to 2 fractional digits only when a breakdown is prepared for
// display, half away from zero.
package pricing

import (
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the Belgian standard VAT rate.
var DefaultTaxRate = decimal.New(21, -2)

var hundred = decimal.NewFromInt(100)

const CurrencySymbol = "€"

type Engine struct {
	taxRate decimal.Decimal
}

func NewEngine(taxRate decimal.Decimal) *Engine {
	return &Engine{taxRate: taxRate}
}

// ComputeTotals prices the given lines under an optional applied discount.
// A discount whose minimum order amount exceeds the subtotal contributes
// zero without being revoked; DiscountApplied reports whether it actually
// reduced the total. The grand total never goes below zero.
func (e *Engine) ComputeTotals(lines []models.CartLine, discount *models.Discount) models.PriceBreakdown {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}

	tax := subtotal.Mul(e.taxRate)

	discountAmount := decimal.Zero
	applied := false

	if discount != nil && subtotal.GreaterThanOrEqual(discount.MinOrderAmount) && subtotal.IsPositive() {
		switch discount.Type {
		case models.DiscountPercentage:
			discountAmount = subtotal.Mul(discount.Value).Div(hundred)
		case models.DiscountFixed:
			// Never discount past zero.
			discountAmount = decimal.Min(discount.Value, subtotal)
		}

		applied = discountAmount.IsPositive()
	}

	total := subtotal.Add(tax).Sub(discountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return models.PriceBreakdown{
		Subtotal:        subtotal,
		Tax:             tax,
		DiscountAmount:  discountAmount,
		Total:           total,
		DiscountApplied: applied,
	}
}

// Round produces the 2-digit breakdown shown to the customer.
func Round(b models.PriceBreakdown) models.PriceBreakdown {
	return models.PriceBreakdown{
		Subtotal:        b.Subtotal.Round(2),
		Tax:             b.Tax.Round(2),
		DiscountAmount:  b.DiscountAmount.Round(2),
		Total:           b.Total.Round(2),
		DiscountApplied: b.DiscountApplied,
	}
}

// FormatEUR renders an amount with the fixed currency prefix and exactly 2
// fractional digits.
func FormatEUR(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}

func Display(b models.PriceBreakdown) models.PriceDisplay {
	return models.PriceDisplay{
		Subtotal: FormatEUR(b.Subtotal),
		Tax:      FormatEUR(b.Tax),
		Discount: FormatEUR(b.DiscountAmount),
		Total:    FormatEUR(b.Total),
	}
}
