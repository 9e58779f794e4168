package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"food-ordering-web/internal/cart"
	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/modal"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/web/templates/pages"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CartHandler handles cart-related requests
type CartHandler struct {
	menu *services.MenuService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(menu *services.MenuService) *CartHandler {
	return &CartHandler{menu: menu}
}

func summaryOf(c *cart.Store) pages.CartSummary {
	return pages.CartSummary{
		Items:        c.Items(),
		Discount:     c.Discount(),
		Subtotal:     c.Subtotal(),
		Total:        c.TotalPrice(),
		RestaurantID: c.RestaurantID(),
	}
}

func formInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", models.ErrInvalidInput, name)
	}
	return v, nil
}

// ShowCart displays the cart page
func (h *CartHandler) ShowCart(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	render(w, r, http.StatusOK, pages.Cart(pages.CartPage{
		Page:    page(r, st, "Cart"),
		Summary: summaryOf(st.Cart),
	}))
}

// respond finishes a cart change: HTMX gets the refreshed cart contents,
// everyone else goes back to the cart page
func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, st *middleware.State, err error) {
	if err != nil {
		handleFailure(w, r, st, err, "/cart")
		return
	}
	if middleware.IsHTMXRequest(r) {
		render(w, r, http.StatusOK, pages.CartContents(summaryOf(st.Cart)))
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// AddToCart adds a product from the product modal. The product is looked
// up on the menu so price and name come from the API, not the form.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := state(r)
	restaurantID, err := formInt(r, "restaurantId")
	if err != nil {
		handleFailure(w, r, st, err, "/restaurant/search")
		return
	}
	back := "/restaurants/" + strconv.Itoa(restaurantID)

	productID, err := formInt(r, "productId")
	if err != nil {
		handleFailure(w, r, st, err, back)
		return
	}
	// keep the modal open so the user sees what was rejected
	var m modal.State
	m.OpenFor(modal.Product, productID)
	retry := m.Link(back, nil)

	quantity, err := formInt(r, "quantity")
	if err != nil || quantity < 1 || quantity > cart.MaxQuantity {
		handleFailure(w, r, st, cart.ErrInvalidQuantity, retry)
		return
	}
	observation := strings.TrimSpace(r.FormValue("observation"))

	product, err := h.menu.Product(r.Context(), st.Session.Current(), restaurantID, productID)
	if err != nil {
		handleFailure(w, r, st, err, back)
		return
	}

	if err := st.Cart.AddItem(product, quantity, observation); err != nil {
		handleFailure(w, r, st, err, retry)
		return
	}

	zerolog.Ctx(r.Context()).Debug().
		Int("product_id", productID).
		Int("quantity", quantity).
		Msg("item added to cart")
	success(r, st, fmt.Sprintf("%s added to your cart.", product.Name))
	middleware.Redirect(w, r, back)
}

// UpdateQuantity sets the quantity of a cart line
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := state(r)
	productID, err := formInt(r, "productId")
	if err != nil {
		h.respond(w, r, st, err)
		return
	}
	quantity, err := formInt(r, "quantity")
	if err != nil {
		h.respond(w, r, st, cart.ErrInvalidQuantity)
		return
	}
	h.respond(w, r, st, st.Cart.UpdateQuantity(productID, quantity))
}

// RemoveFromCart drops a cart line
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := state(r)
	productID, err := formInt(r, "productId")
	if err != nil {
		h.respond(w, r, st, err)
		return
	}
	h.respond(w, r, st, st.Cart.RemoveItem(productID))
}

// ClearCart removes every item and the discount
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	h.respond(w, r, st, st.Cart.Clear())
}

// ApplyDiscount attaches a discount to the cart. Empty fields remove it.
// The discount id is checked by the API when the order is placed.
func (h *CartHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := state(r)
	rawID := strings.TrimSpace(r.FormValue("discountId"))
	rawAmount := strings.TrimSpace(r.FormValue("amount"))
	if rawID == "" && rawAmount == "" {
		h.respond(w, r, st, st.Cart.ApplyDiscount(models.Discount{}))
		return
	}

	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		h.respond(w, r, st, cart.ErrInvalidDiscount)
		return
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(rawAmount, ",", "."))
	if err != nil {
		h.respond(w, r, st, cart.ErrInvalidDiscount)
		return
	}

	h.respond(w, r, st, st.Cart.ApplyDiscount(models.Discount{ID: id, Amount: amount.Round(2)}))
}
