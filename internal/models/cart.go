package models

import "github.com/shopspring/decimal"

// CartLine pairs a product snapshot with a quantity. The snapshot is taken
// when the product is first added; later catalog price changes do not touch
// lines already in the cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PriceBreakdown is derived from the ledger on every read, never stored.
// Amounts are exact decimals; rounding happens only when building the
// display strings.
type PriceBreakdown struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
	DiscountApplied bool            `json:"discount_applied"`
}

// PriceDisplay holds the currency-formatted breakdown, 2 fractional digits
// with the € prefix.
type PriceDisplay struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

type CartLineView struct {
	ProductID        string           `json:"product_id"`
	Name             MultilingualText `json:"name"`
	DisplayName      string           `json:"display_name"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	Quantity         int              `json:"quantity"`
	LineTotal        decimal.Decimal  `json:"line_total"`
	DisplayUnitPrice string           `json:"display_unit_price"`
	DisplayLineTotal string           `json:"display_line_total"`
}

type CartView struct {
	SessionID string         `json:"session_id"`
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"item_count"`
	Discount  *Discount      `json:"discount,omitempty"`
	Totals    PriceBreakdown `json:"totals"`
	Display   PriceDisplay   `json:"display"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	// Zero or negative removes the line.
	Quantity int `json:"quantity"`
}

type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}
