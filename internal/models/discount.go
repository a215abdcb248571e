package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is the backend's promotion record. Codes are case-insensitive
// and stored uppercase. MaxUses 0 means unlimited, MinOrderAmount 0 means
// no minimum.
type Discount struct {
	ID             string           `json:"id"`
	Code           string           `json:"code"`
	Name           MultilingualText `json:"name"`
	Description    MultilingualText `json:"description"`
	Type           DiscountType     `json:"discount_type"`
	Value          decimal.Decimal  `json:"discount_value"`
	MinOrderAmount decimal.Decimal  `json:"min_order_amount"`
	MaxUses        int              `json:"max_uses"`
	UsedCount      int              `json:"used_count"`
	IsActive       bool             `json:"is_active"`
	ValidFrom      time.Time        `json:"valid_from"`
	ValidUntil     *time.Time       `json:"valid_until,omitempty"`
}
