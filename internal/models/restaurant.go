package models

import "github.com/shopspring/decimal"

// Category groups restaurants by cuisine
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Restaurant is a restaurant listed by the API
type Restaurant struct {
	ID          int      `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
}

// RestaurantDetail is a restaurant with its menu and operator statistics
type RestaurantDetail struct {
	Restaurant
	Rating   decimal.Decimal `json:"rating"`
	Products []Product       `json:"products"`
	Orders   []Order         `json:"orders"`
}

// Product looks up a product on the menu
func (d *RestaurantDetail) Product(id int) (Product, error) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// SearchCategories are the cuisine shortcuts shown on the search page
var SearchCategories = []SearchCategory{
	{Name: "Lanches", ImagePath: "lanches.svg"},
	{Name: "Japonês", ImagePath: "japones.svg"},
	{Name: "Vegetariana", ImagePath: "vegetariana.svg"},
	{Name: "Brasileira", ImagePath: "brasileira.svg"},
	{Name: "Bebidas", ImagePath: "bebidas.svg"},
}

// SearchCategory is a category shortcut card
type SearchCategory struct {
	Name      string
	ImagePath string
}
