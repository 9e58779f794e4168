package handlers

import (
	"errors"
	"net/http"

	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/services"
	"food-ordering-web/web/templates/pages"
)

// SearchHandler serves the restaurant search
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

func queryFrom(r *http.Request) services.SearchQuery {
	q := r.URL.Query()
	return services.SearchQuery{
		Keyword:  q.Get("keyword"),
		Category: q.Get("category"),
	}
}

// SearchPage renders the search page. Without a filter it lists every
// restaurant.
func (h *SearchHandler) SearchPage(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	q := queryFrom(r)

	result, err := h.search.Search(r.Context(), st.Session.Current(), st.ClientKey, q)
	if errors.Is(err, services.ErrStaleResult) {
		// a newer search from the same browser is already running
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		handleLoadFailure(w, r, st, err, "Restaurants")
		return
	}

	render(w, r, http.StatusOK, pages.Search(pages.SearchPage{
		Page:   page(r, st, "Restaurants"),
		Query:  result.Query,
		Result: result,
	}))
}

// Results is the HTMX partial for the results list. A search overtaken by a
// newer one from the same browser answers 204 so nothing is swapped.
func (h *SearchHandler) Results(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	if !middleware.IsHTMXRequest(r) {
		http.Redirect(w, r, "/restaurant/search?"+r.URL.RawQuery, http.StatusSeeOther)
		return
	}

	result, err := h.search.Search(r.Context(), st.Session.Current(), st.ClientKey, queryFrom(r))
	switch {
	case errors.Is(err, services.ErrStaleResult):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		handleFailure(w, r, st, err, "/restaurant/search")
	default:
		render(w, r, http.StatusOK, pages.SearchResults(result))
	}
}
