package handlers

import (
	"net/http"
	"testing"
	"time"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSearchHandler(t *testing.T, m *apiMock) (*SearchHandler, *services.Fence) {
	fence := services.NewFence(time.Minute)
	t.Cleanup(fence.Close)
	return NewSearchHandler(services.NewSearchService(m, fence)), fence
}

func TestSearchPage(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	h, _ := newSearchHandler(t, m)
	m.On("ListRestaurants", mock.Anything, "tok", api.RestaurantQuery{Category: "Japonês"}).
		Return(&api.RestaurantPage{Content: []api.RestaurantDTO{{ID: 2, Name: "Sushi House", Category: api.CategoryDTO{Name: "Japonês"}}}}, nil).Once()

	rec := serve(h.SearchPage, st, getRequest("/restaurant/search?category=Japon%C3%AAs"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sushi House")
	assert.Contains(t, rec.Body.String(), `href="/restaurants/2"`)
}

func TestSearchResults_KeywordWins(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	h, _ := newSearchHandler(t, m)
	m.On("ListRestaurants", mock.Anything, "tok", api.RestaurantQuery{Name: "burger"}).
		Return(&api.RestaurantPage{Content: []api.RestaurantDTO{}}, nil).Once()

	rec := serve(h.Results, st, htmx(getRequest("/restaurant/search/results?keyword=burger&category=Lanches")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No restaurants found")
	m.AssertExpectations(t)
}

func TestSearchResults_StaleAnswerIsDropped(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	h, fence := newSearchHandler(t, m)

	// a newer search from the same browser starts while this one is in flight
	m.On("ListRestaurants", mock.Anything, "tok", api.RestaurantQuery{Name: "bur"}).
		Run(func(mock.Arguments) { fence.Begin(st.ClientKey) }).
		Return(&api.RestaurantPage{Content: []api.RestaurantDTO{{ID: 1, Name: "Burger Place"}}}, nil).Once()

	rec := serve(h.Results, st, htmx(getRequest("/restaurant/search/results?keyword=bur")))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSearchResults_NonHTMXRedirects(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	h, _ := newSearchHandler(t, m)

	rec := serve(h.Results, st, getRequest("/restaurant/search/results?keyword=sushi"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/restaurant/search?keyword=sushi", rec.Header().Get("Location"))
}

func TestSearchPage_APIDown(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	h, _ := newSearchHandler(t, m)
	m.On("ListRestaurants", mock.Anything, "tok", mock.Anything).
		Return(nil, &api.Error{StatusCode: http.StatusInternalServerError}).Once()

	rec := serve(h.SearchPage, st, getRequest("/restaurant/search"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Restaurants is unavailable")
	assert.Contains(t, rec.Body.String(), "Something went wrong. Please try again later.")
}
