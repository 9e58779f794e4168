package services

import (
	"context"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/models"
)

// ClientAPI is the customer part of the remote API
type ClientAPI interface {
	GetClient(ctx context.Context, token, id string) (*api.ClientDTO, error)
	CreateClient(ctx context.Context, req api.SignUpRequest) (*api.ClientDTO, error)
}

// RestaurantAPI is the restaurant part of the remote API
type RestaurantAPI interface {
	ListRestaurants(ctx context.Context, token string, q api.RestaurantQuery) (*api.RestaurantPage, error)
	GetRestaurant(ctx context.Context, token, id string) (*api.RestaurantDetailDTO, error)
}

// OrderAPI places orders
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, req api.OrderRequest) (*api.OrderDTO, error)
}

// CardAPI stores credit cards
type CardAPI interface {
	CreateCard(ctx context.Context, token string, req api.CardRequest) (*api.CardDTO, error)
}

// RemoteAPI is everything the services need from the API. *api.Client and
// *MockAPI implement it.
type RemoteAPI interface {
	ClientAPI
	RestaurantAPI
	OrderAPI
	CardAPI
}

// Cart is the cart contract used by checkout. *cart.Store implements it.
type Cart interface {
	Items() []models.LineItem
	Discount() models.Discount
	RestaurantID() int
	IsEmpty() bool
	Clear() error
}

var (
	_ RemoteAPI = (*api.Client)(nil)
	_ RemoteAPI = (*MockAPI)(nil)
)
