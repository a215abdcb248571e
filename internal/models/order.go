package models

import "github.com/shopspring/decimal"

type CustomerInfo struct {
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"       validate:"required"`
	Address    string `json:"address"     validate:"required"`
	City       string `json:"city"        validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"`
}

type CheckoutRequest struct {
	Customer      CustomerInfo `json:"customer"       validate:"required"`
	PaymentMethod string       `json:"payment_method" validate:"required,oneof=mock bancontact ideal paypal card"`
	Notes         string       `json:"notes"`
}

// OrderItem mirrors the backend's order line: product name and price are
// frozen into the order at submission time.
type OrderItem struct {
	ProductID   string           `json:"product_id"`
	ProductName MultilingualText `json:"product_name"`
	Quantity    int              `json:"quantity"`
	Price       decimal.Decimal  `json:"price"`
	Total       decimal.Decimal  `json:"total"`
}

type OrderConfirmation struct {
	OrderID     string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
}
