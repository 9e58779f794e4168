package services

import (
	"context"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/models"

	"github.com/stretchr/testify/mock"
)

// mockRemoteAPI is a testify mock of RemoteAPI
type mockRemoteAPI struct {
	mock.Mock
}

func (m *mockRemoteAPI) GetClient(ctx context.Context, token, id string) (*api.ClientDTO, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ClientDTO), args.Error(1)
}

func (m *mockRemoteAPI) CreateClient(ctx context.Context, req api.SignUpRequest) (*api.ClientDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ClientDTO), args.Error(1)
}

func (m *mockRemoteAPI) ListRestaurants(ctx context.Context, token string, q api.RestaurantQuery) (*api.RestaurantPage, error) {
	args := m.Called(ctx, token, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RestaurantPage), args.Error(1)
}

func (m *mockRemoteAPI) GetRestaurant(ctx context.Context, token, id string) (*api.RestaurantDetailDTO, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RestaurantDetailDTO), args.Error(1)
}

func (m *mockRemoteAPI) CreateOrder(ctx context.Context, token string, req api.OrderRequest) (*api.OrderDTO, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.OrderDTO), args.Error(1)
}

func (m *mockRemoteAPI) CreateCard(ctx context.Context, token string, req api.CardRequest) (*api.CardDTO, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CardDTO), args.Error(1)
}

func customerSession() *models.Session {
	return &models.Session{SubjectID: "7", Name: "Maria", AccountType: models.AccountCustomer, Token: "tok"}
}

func restaurantSession() *models.Session {
	return &models.Session{SubjectID: "1", Name: "Burger Place", AccountType: models.AccountRestaurant, Token: "rtok"}
}
