package services

import (
	"context"
	"fmt"
	"strconv"

	"food-ordering-web/internal/models"
)

// MenuService loads restaurant menus for the product page and modal
type MenuService struct {
	restaurants RestaurantAPI
}

// NewMenuService creates a new menu service
func NewMenuService(restaurants RestaurantAPI) *MenuService {
	return &MenuService{restaurants: restaurants}
}

// Restaurant returns a restaurant with its products
func (s *MenuService) Restaurant(ctx context.Context, sess *models.Session, id int) (*models.RestaurantDetail, error) {
	if !sess.Authenticated() {
		return nil, ErrNotSignedIn
	}
	if id <= 0 {
		return nil, models.ErrRestaurantNotFound
	}

	dto, err := s.restaurants.GetRestaurant(ctx, sess.Token, strconv.Itoa(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant %d: %w", id, err)
	}
	return dto.Model(), nil
}

// Product returns one product of a restaurant menu
func (s *MenuService) Product(ctx context.Context, sess *models.Session, restaurantID, productID int) (models.Product, error) {
	restaurant, err := s.Restaurant(ctx, sess, restaurantID)
	if err != nil {
		return models.Product{}, err
	}
	return restaurant.Product(productID)
}
