package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is an order placed by a customer at one restaurant
type Order struct {
	ID           int             `json:"id"`
	ClientID     int             `json:"client_id"`
	RestaurantID int             `json:"restaurant_id"`
	Status       OrderStatus     `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []OrderItem     `json:"items"`
}

// OrderItem is one product line of an order
type OrderItem struct {
	ProductID   int    `json:"product_id"`
	Name        string `json:"name,omitempty"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// ItemCount returns the number of units in the order
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
