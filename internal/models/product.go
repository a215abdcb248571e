package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string           `json:"id"`
	Name        MultilingualText `json:"name"`
	Description MultilingualText `json:"description"`
	Image       *string          `json:"image,omitempty"`
	ParentID    *string          `json:"parent_id,omitempty"`
	IsActive    bool             `json:"is_active"`
	SortOrder   int              `json:"sort_order"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type Product struct {
	ID             string            `json:"id"`
	Name           MultilingualText  `json:"name"`
	Description    MultilingualText  `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Stock          int               `json:"stock"`
	SKU            string            `json:"sku"`
	CategoryID     string            `json:"category_id"`
	Images         []string          `json:"images,omitempty"`
	IsActive       bool              `json:"is_active"`
	Unit           string            `json:"unit"`
	Brand          string            `json:"brand"`
	Specifications map[string]string `json:"specifications,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	CategoryID string
	Search     string
	ActiveOnly bool
	Limit      int
}

// ProductView is a catalog entry with its name and description resolved to
// the request language.
type ProductView struct {
	Product
	DisplayName        string `json:"display_name"`
	DisplayDescription string `json:"display_description"`
	DisplayPrice       string `json:"display_price"`
}

type CategoryView struct {
	Category
	DisplayName string `json:"display_name"`
}
