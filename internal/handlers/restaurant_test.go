package handlers

import (
	"context"
	"net/http"
	"testing"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/modal"
	"food-ordering-web/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func menuRequest(id, query string) *http.Request {
	req := getRequest("/restaurants/" + id + query)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMenu_ProductModal(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	st.Modal.OpenFor(modal.Product, 10)
	m.On("GetRestaurant", mock.Anything, "tok", "1").Return(burgerPlace(), nil)
	h := NewRestaurantHandler(services.NewMenuService(m))

	rec := serve(h.Menu, st, menuRequest("1", "?modal=product&target=10"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Burger Place")
	assert.Contains(t, body, `id="product-form"`)
	assert.Contains(t, body, `name="productId" value="10"`)
}

func TestMenu_UnknownProductClosesModal(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	st.Modal.OpenFor(modal.Product, 99)
	m.On("GetRestaurant", mock.Anything, "tok", "1").Return(burgerPlace(), nil)
	h := NewRestaurantHandler(services.NewMenuService(m))

	rec := serve(h.Menu, st, menuRequest("1", "?modal=product&target=99"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `id="product-form"`)
}

func TestMenu_NotFound(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	m.On("GetRestaurant", mock.Anything, "tok", "42").
		Return(nil, &api.Error{StatusCode: http.StatusNotFound, Message: "Restaurant not found"})
	h := NewRestaurantHandler(services.NewMenuService(m))

	rec := serve(h.Menu, st, menuRequest("42", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h.Menu, st, menuRequest("abc", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
