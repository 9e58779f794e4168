package models

import "github.com/shopspring/decimal"

// Product is an item on a restaurant menu
type Product struct {
	ID           int             `json:"id"`
	Type         string          `json:"type"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url,omitempty"`
	RestaurantID int             `json:"restaurant_id"`
}

// LineItem is one product entry in the cart
type LineItem struct {
	ProductID    int             `json:"product_id"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Observation  string          `json:"observation,omitempty"`
	RestaurantID int             `json:"restaurant_id"`
}

// Subtotal returns unit price times quantity
func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Discount is a monetary reduction applied to the cart total
type Discount struct {
	ID     int             `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// IsZero reports whether no discount is attached
func (d Discount) IsZero() bool {
	return d.ID == 0 && d.Amount.IsZero()
}
