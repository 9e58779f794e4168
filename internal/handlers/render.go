package handlers

import (
	"errors"
	"net/http"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/cart"
	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/web/templates/components"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"
)

// render writes a component with the given status
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render template")
	}
}

// page collects the layout data. Queued notices are popped here, so it must
// run before anything is written to w.
func page(r *http.Request, st *middleware.State, title string) components.Page {
	p := components.Page{
		Title:     title,
		Session:   st.Session.Current(),
		CartCount: st.Cart.ItemCount(),
	}

	notices, err := st.Notices.Pop()
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to read notices")
	}
	p.Notices = notices
	return p
}

// state returns the client state; ClientState runs in front of every route
func state(r *http.Request) *middleware.State {
	return middleware.GetState(r.Context())
}

// authFailure handles the errors that end on the login page or a 403. A
// 403 from the API signs the user out before redirecting.
func authFailure(w http.ResponseWriter, r *http.Request, st *middleware.State, err error, back string) bool {
	switch {
	case api.IsSessionExpired(err):
		logger := zerolog.Ctx(r.Context())
		logger.Info().Err(err).Msg("API rejected the session token")
		if expErr := st.Session.Expire(); expErr != nil {
			logger.Error().Err(expErr).Msg("failed to clear expired session")
		}
		middleware.Redirect(w, r, middleware.LoginURL(back))
	case errors.Is(err, services.ErrNotSignedIn):
		middleware.Redirect(w, r, middleware.LoginURL(back))
	case errors.Is(err, services.ErrWrongAccount):
		http.Error(w, "Access denied", http.StatusForbidden)
	default:
		return false
	}
	return true
}

// handleFailure deals with a failed action. Anything that is not an auth
// problem becomes a toast on the page at back.
func handleFailure(w http.ResponseWriter, r *http.Request, st *middleware.State, err error, back string) {
	if authFailure(w, r, st, err, back) {
		return
	}
	logFailure(r, err)
	notify(r, st, err)
	middleware.Redirect(w, r, back)
}

// handleLoadFailure deals with a page whose data could not be loaded. The
// page is replaced by an empty state carrying the toast.
func handleLoadFailure(w http.ResponseWriter, r *http.Request, st *middleware.State, err error, title string) {
	if authFailure(w, r, st, err, r.URL.RequestURI()) {
		return
	}
	if isNotFound(err) {
		middleware.NotFoundHandler().ServeHTTP(w, r)
		return
	}

	logFailure(r, err)
	notify(r, st, err)
	body := components.EmptyState(title+" is unavailable", "Please try again in a moment.")
	render(w, r, http.StatusBadGateway, components.Layout(page(r, st, title), body, nil))
}

func isNotFound(err error) bool {
	if errors.Is(err, models.ErrRestaurantNotFound) || errors.Is(err, models.ErrProductNotFound) {
		return true
	}
	var apiErr *api.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func logFailure(r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		logger.Error().Err(err).Str("endpoint", decodeErr.Endpoint).Msg("unexpected API response")
		return
	}
	logger.Warn().Err(err).Msg("request failed")
}

// notify queues the user message for err
func notify(r *http.Request, st *middleware.State, err error) {
	if nerr := st.Notices.Error(userMessage(err)); nerr != nil {
		zerolog.Ctx(r.Context()).Error().Err(nerr).Msg("failed to queue notice")
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNoCardSelected):
		return "Please select a payment method."
	case errors.Is(err, services.ErrEmptyCart):
		return "Your cart is empty."
	case errors.Is(err, cart.ErrRestaurantConflict):
		return "Your cart holds items from another restaurant. Clear it to order from here."
	case errors.Is(err, cart.ErrInvalidQuantity):
		return "Quantity must be between 1 and 99."
	case errors.Is(err, cart.ErrItemNotFound):
		return "That item is no longer in your cart."
	case errors.Is(err, cart.ErrInvalidDiscount):
		return "Enter a valid discount."
	case errors.Is(err, models.ErrCardNotFound):
		return "That card is no longer available."
	}
	return api.UserMessage(err)
}

// success queues a success toast
func success(r *http.Request, st *middleware.State, message string) {
	if err := st.Notices.Success(message); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to queue notice")
	}
}
