package handlers

import (
	"errors"
	"net/http"

	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/modal"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/internal/validation"
	"food-ordering-web/web/templates/pages"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles the payment step and order placement
type CheckoutHandler struct {
	checkout *services.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// cardBook returns the stored card book; a failed read starts an empty one
func cardBook(r *http.Request, st *middleware.State) *models.CardBook {
	book, err := st.CardBook()
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to read card book")
		return &models.CardBook{}
	}
	return book
}

func saveCardBook(r *http.Request, st *middleware.State, book *models.CardBook) {
	if err := st.SaveCardBook(book); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to save card book")
	}
}

// CheckoutPage shows the saved cards and the order summary. The card list is
// fetched on every visit; the selection survives if the card still exists.
func (h *CheckoutHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	if st.Cart.IsEmpty() {
		notify(r, st, services.ErrEmptyCart)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	cards, err := h.checkout.LoadCards(r.Context(), st.Session.Current())
	if err != nil {
		handleLoadFailure(w, r, st, err, "Payment")
		return
	}
	book := cardBook(r, st)
	book.Replace(cards)
	saveCardBook(r, st, book)

	h.renderCheckout(w, r, st, http.StatusOK, pages.CheckoutPage{
		Book:       book,
		AddingCard: st.Modal.IsOpen(modal.AddCard),
	})
}

func (h *CheckoutHandler) renderCheckout(w http.ResponseWriter, r *http.Request, st *middleware.State, status int, view pages.CheckoutPage) {
	view.Page = page(r, st, "Payment")
	view.Summary = summaryOf(st.Cart)
	render(w, r, status, pages.Checkout(view))
}

// PlaceOrder submits the cart with the selected card. Without a selection
// nothing is sent and the cart stays as it is.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	book := cardBook(r, st)

	order, err := h.checkout.Submit(r.Context(), st.Session.Current(), st.Cart, book)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			handleFailure(w, r, st, err, "/cart")
			return
		}
		handleFailure(w, r, st, err, "/checkout")
		return
	}

	// Submit resets the selection once the order is accepted
	saveCardBook(r, st, book)
	zerolog.Ctx(r.Context()).Info().
		Int("order_id", order.ID).
		Str("total", order.Total.StringFixed(2)).
		Msg("order placed")
	success(r, st, "Order placed! You can follow it below.")
	middleware.Redirect(w, r, "/orders")
}

// SelectCard marks the card used for payment
func (h *CheckoutHandler) SelectCard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := state(r)
	cardID, err := formInt(r, "cardId")
	if err != nil {
		handleFailure(w, r, st, err, "/checkout")
		return
	}

	book := cardBook(r, st)
	if err := book.Select(cardID); err != nil {
		handleFailure(w, r, st, err, "/checkout")
		return
	}
	saveCardBook(r, st, book)

	if middleware.IsHTMXRequest(r) {
		render(w, r, http.StatusOK, pages.CardList(book))
		return
	}
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

// AddCard stores a new card. Invalid input is shown inline and never sent;
// a stored card is appended to the list without a re-fetch.
func (h *CheckoutHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := state(r)
	form := services.CardForm{
		Nickname:   r.FormValue("nickname"),
		Owner:      r.FormValue("owner"),
		CardNumber: r.FormValue("cardNumber"),
		ValidThru:  r.FormValue("validThru"),
		CVV:        r.FormValue("cvv"),
		CPF:        r.FormValue("cpfClient"),
	}

	card, err := h.checkout.AddCard(r.Context(), st.Session.Current(), form)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		form.CVV = ""
		h.renderCheckout(w, r, st, http.StatusUnprocessableEntity, pages.CheckoutPage{
			Book:       cardBook(r, st),
			AddingCard: true,
			CardForm:   form,
			CardErrors: verrs,
		})
		return
	}
	if err != nil {
		var m modal.State
		m.Open(modal.AddCard)
		handleFailure(w, r, st, err, m.Link("/checkout", nil))
		return
	}

	book := cardBook(r, st)
	book.Append(*card)
	saveCardBook(r, st, book)
	success(r, st, "Card saved.")
	middleware.Redirect(w, r, "/checkout")
}
