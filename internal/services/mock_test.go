package services

import (
	"context"
	"testing"

	"food-ordering-web/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockAPI_OrderFlow(t *testing.T) {
	m := NewMockAPI()
	ctx := context.Background()

	login, err := m.Login(ctx, "maria@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, login.Client)

	page, err := m.ListRestaurants(ctx, login.Token, api.RestaurantQuery{Category: "Japonês"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Sushi House", page.Content[0].Name)

	order, err := m.CreateOrder(ctx, login.Token, api.OrderRequest{
		ClientID:     7,
		RestaurantID: 2,
		ProductList:  []api.OrderProduct{{ProductID: 20, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "58", order.TotalPrice.String())

	client, err := m.GetClient(ctx, login.Token, "7")
	require.NoError(t, err)
	assert.Len(t, client.Orders, 1)
}

func TestMockAPI_ExpiredToken(t *testing.T) {
	m := NewMockAPI()
	ctx := context.Background()

	login, err := m.Login(ctx, "maria@example.com", "password123")
	require.NoError(t, err)
	m.Expire(login.Token)

	_, err = m.GetClient(ctx, login.Token, "7")
	assert.True(t, api.IsSessionExpired(err))
}

func TestMockAPI_WrongPassword(t *testing.T) {
	_, err := NewMockAPI().Login(context.Background(), "maria@example.com", "nope")
	assert.Equal(t, "Invalid credentials", api.UserMessage(err))
}
