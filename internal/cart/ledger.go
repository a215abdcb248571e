// Package cart holds the in-memory ledger of a storefront session: the
// lines the customer has selected, unique per product, in insertion order.
package cart

import (
	"errors"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Ledger is not safe for concurrent use; the owning session serializes
// access.
type Ledger struct {
	lines []models.CartLine
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) find(productID string) int {
	for i := range l.lines {
		if l.lines[i].Product.ID == productID {
			return i
		}
	}

	return -1
}

// Add puts quantity units of product into the ledger. An existing line for
// the same product is incremented; otherwise a new line is appended with the
// product snapshot frozen at add time. Stock limits are a display concern
// and are not enforced here.
func (l *Ledger) Add(product models.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if i := l.find(product.ID); i >= 0 {
		l.lines[i].Quantity += quantity

		return nil
	}

	l.lines = append(l.lines, models.CartLine{Product: product, Quantity: quantity})

	return nil
}

// UpdateQuantity sets the line's quantity exactly; zero or below removes the
// line. The second return reports whether a line for productID existed.
func (l *Ledger) UpdateQuantity(productID string, quantity int) bool {
	i := l.find(productID)
	if i < 0 {
		return false
	}

	if quantity <= 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)

		return true
	}

	l.lines[i].Quantity = quantity

	return true
}

// Remove drops the line if present; removing an absent product is a no-op.
func (l *Ledger) Remove(productID string) {
	if i := l.find(productID); i >= 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
	}
}

func (l *Ledger) Clear() {
	l.lines = nil
}

func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

// ItemCount is the sum of all line quantities, the number shown on the cart
// badge.
func (l *Ledger) ItemCount() int {
	count := 0
	for _, line := range l.lines {
		count += line.Quantity
	}

	return count
}

// Lines returns a copy in insertion order.
func (l *Ledger) Lines() []models.CartLine {
	out := make([]models.CartLine, len(l.lines))
	copy(out, l.lines)

	return out
}

// Subtotal sums the exact line totals without any intermediate rounding.
func (l *Ledger) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range l.lines {
		subtotal = subtotal.Add(line.LineTotal())
	}

	return subtotal
}
