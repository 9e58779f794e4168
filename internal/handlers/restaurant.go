package handlers

import (
	"net/http"
	"strconv"

	"food-ordering-web/internal/modal"
	"food-ordering-web/internal/services"
	"food-ordering-web/web/templates/pages"

	"github.com/go-chi/chi/v5"
)

// RestaurantHandler serves restaurant menus and the product modal
type RestaurantHandler struct {
	menu *services.MenuService
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(menu *services.MenuService) *RestaurantHandler {
	return &RestaurantHandler{menu: menu}
}

// Menu renders a restaurant with its products. ?modal=product&target=ID
// opens the product modal over the menu.
func (h *RestaurantHandler) Menu(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	// a malformed id reads as 0, which the menu service reports as not found
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	restaurant, err := h.menu.Restaurant(r.Context(), st.Session.Current(), id)
	if err != nil {
		handleLoadFailure(w, r, st, err, "Restaurant")
		return
	}

	view := pages.RestaurantPage{
		Restaurant: restaurant,
		Stars:      services.RatingStars(restaurant.Rating),
		Modal:      st.Modal,
	}
	if st.Modal.IsOpen(modal.Product) {
		prod, err := restaurant.Product(st.Modal.Target())
		if err == nil {
			view.Product = &prod
		}
	}
	if view.Product == nil {
		view.Modal.Close()
	}

	view.Page = page(r, st, restaurant.Name)
	render(w, r, http.StatusOK, pages.Restaurant(view))
}
