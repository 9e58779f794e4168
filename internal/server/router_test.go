package server

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"food-ordering-web/internal/handlers"
	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSite struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	api    *services.MockAPI
}

func newTestSite(t *testing.T, skipCSRF bool) *testSite {
	t.Helper()

	mock := services.NewMockAPI()
	logger := zerolog.Nop()
	fence := services.NewFence(time.Minute)
	limiter := middleware.NewLoginRateLimiter(5, time.Minute)
	t.Cleanup(fence.Close)
	t.Cleanup(limiter.Close)

	menu := services.NewMenuService(mock)
	h := Handlers{
		Auth:       handlers.NewAuthHandler(services.NewSignupService(mock), limiter),
		Search:     handlers.NewSearchHandler(services.NewSearchService(mock, fence)),
		Restaurant: handlers.NewRestaurantHandler(menu),
		Cart:       handlers.NewCartHandler(menu),
		Checkout:   handlers.NewCheckoutHandler(services.NewCheckoutService(mock, mock, mock, logger)),
		Dashboard:  handlers.NewDashboardHandler(services.NewDashboardService(mock, mock)),
		Health:     handlers.NewHealthHandler("food-ordering-web", mock),
	}

	store := sessions.NewCookieStore(securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))
	router := NewRouter(h, Options{
		Logger:       logger,
		ClientState:  middleware.NewClientState(store, "food-ordering", mock, logger),
		LoginLimiter: limiter,
		StaticDir:    "../../web/static",
		SkipCSRF:     skipCSRF,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testSite{t: t, server: srv, client: client, api: mock}
}

func (s *testSite) get(path string) (*http.Response, string) {
	s.t.Helper()
	resp, err := s.client.Get(s.server.URL + path)
	require.NoError(s.t, err)
	return resp, readBody(s.t, resp)
}

func (s *testSite) post(path string, form url.Values) (*http.Response, string) {
	s.t.Helper()
	resp, err := s.client.PostForm(s.server.URL+path, form)
	require.NoError(s.t, err)
	return resp, readBody(s.t, resp)
}

func (s *testSite) signIn(email, password string) *http.Response {
	s.t.Helper()
	resp, _ := s.post("/login", url.Values{"email": {email}, "password": {password}})
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestRouter_Health(t *testing.T) {
	site := newTestSite(t, true)

	resp, body := site.get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"api":"ok"`)
}

func TestRouter_NotFound(t *testing.T) {
	site := newTestSite(t, true)

	resp, body := site.get("/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page Not Found")
}

func TestRouter_StaticAssets(t *testing.T) {
	site := newTestSite(t, true)

	resp, body := site.get("/static/css/output.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.Contains(t, body, ".htmx-indicator")

	for _, c := range models.SearchCategories {
		resp, _ := site.get("/static/img/" + c.ImagePath)
		assert.Equal(t, http.StatusOK, resp.StatusCode, c.ImagePath)
	}
}

func TestRouter_AnonymousIsSentToLogin(t *testing.T) {
	site := newTestSite(t, true)

	for _, path := range []string{"/cart", "/restaurant/search", "/restaurants/dashboard"} {
		resp, _ := site.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login?redirect="+url.QueryEscape(path), resp.Header.Get("Location"), path)
	}
}

func TestRouter_SignInFailure(t *testing.T) {
	site := newTestSite(t, true)

	resp, body := site.post("/login", url.Values{"email": {"maria@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Invalid email or password.")

	resp, body = site.post("/login", url.Values{"email": {"not-an-email"}, "password": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Enter a valid email")
	assert.Contains(t, body, "Password is required")
}

func TestRouter_SignInKeepsRedirect(t *testing.T) {
	site := newTestSite(t, true)

	resp, _ := site.post("/login", url.Values{
		"email":    {"maria@example.com"},
		"password": {"password123"},
		"redirect": {"/restaurants/2"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/restaurants/2", resp.Header.Get("Location"))

	// an absolute URL is never followed
	site.post("/logout", nil)
	resp, _ = site.post("/login", url.Values{
		"email":    {"maria@example.com"},
		"password": {"password123"},
		"redirect": {"https://evil.example"},
	})
	assert.Equal(t, "/restaurant/search", resp.Header.Get("Location"))
}

func TestRouter_CustomerOrderFlow(t *testing.T) {
	site := newTestSite(t, true)

	resp := site.signIn("maria@example.com", "password123")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/restaurant/search", resp.Header.Get("Location"))

	resp, body := site.get("/restaurant/search?keyword=burger")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Burger Place")
	assert.NotContains(t, body, "Sushi House")

	resp, body = site.get("/restaurants/1?modal=product&target=10")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="product-form"`)

	resp, _ = site.post("/cart/add", url.Values{
		"restaurantId": {"1"},
		"productId":    {"10"},
		"quantity":     {"2"},
		"observation":  {"no pickles"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/restaurants/1", resp.Header.Get("Location"))

	_, body = site.get("/cart")
	assert.Contains(t, body, "Cheeseburger")
	assert.Contains(t, body, "no pickles")
	assert.Contains(t, body, "47,80")

	// no card selected: nothing is sent and the cart stays
	resp, _ = site.post("/checkout", nil)
	assert.Equal(t, "/checkout", resp.Header.Get("Location"))
	_, body = site.get("/checkout")
	assert.Contains(t, body, "Please select a payment method.")
	assert.Contains(t, body, "Cheeseburger")

	resp, _ = site.post("/checkout/cards/select", url.Values{"cardId": {"1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = site.post("/checkout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/orders", resp.Header.Get("Location"))

	_, body = site.get("/orders")
	assert.Contains(t, body, "Order placed!")
	assert.Contains(t, body, "47,80")

	_, body = site.get("/cart")
	assert.Contains(t, body, "Your cart is empty")
}

func TestRouter_SignOutLocksProtectedPages(t *testing.T) {
	site := newTestSite(t, true)

	resp := site.signIn("maria@example.com", "password123")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	site.post("/cart/add", url.Values{"restaurantId": {"1"}, "productId": {"10"}, "quantity": {"1"}})

	resp, _ = site.get("/checkout")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	site.post("/logout", nil)

	resp, _ = site.get("/checkout")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fcheckout", resp.Header.Get("Location"))

	resp, _ = site.get("/orders")
	assert.Equal(t, "/login?redirect=%2Forders", resp.Header.Get("Location"))
}

func TestRouter_CartRejectsOtherRestaurant(t *testing.T) {
	site := newTestSite(t, true)
	site.signIn("maria@example.com", "password123")

	site.post("/cart/add", url.Values{"restaurantId": {"1"}, "productId": {"11"}, "quantity": {"1"}})
	resp, _ := site.post("/cart/add", url.Values{"restaurantId": {"2"}, "productId": {"20"}, "quantity": {"1"}})
	assert.Equal(t, "/restaurants/2?modal=product&target=20", resp.Header.Get("Location"))

	_, body := site.get("/cart")
	assert.Contains(t, body, "Fries")
	assert.NotContains(t, body, "Salmon temaki")
}

func TestRouter_AccountTypes(t *testing.T) {
	site := newTestSite(t, true)

	resp := site.signIn("burger@example.com", "restaurant123")
	assert.Equal(t, "/restaurants/dashboard", resp.Header.Get("Location"))

	resp, body := site.get("/restaurants/dashboard")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Burger Place")

	resp, _ = site.get("/cart")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = site.get("/restaurants/dashboard/orders.xlsx")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=\"orders-1.xlsx\"", resp.Header.Get("Content-Disposition"))
}

func TestRouter_SignUp(t *testing.T) {
	site := newTestSite(t, true)

	resp, body := site.post("/signup/client", url.Values{
		"name":            {"Ana"},
		"email":           {"ana@example.com"},
		"password":        {"secret123"},
		"confirmPassword": {"different"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Passwords do not match")

	resp, _ = site.post("/signup/client", url.Values{
		"name":            {"Ana"},
		"email":           {"ana@example.com"},
		"password":        {"secret123"},
		"confirmPassword": {"secret123"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?modal=signin", resp.Header.Get("Location"))

	_, body = site.get("/?modal=signin")
	assert.Contains(t, body, "Account created. Please sign in.")
	assert.Contains(t, body, `id="signin-form"`)

	resp = site.signIn("ana@example.com", "secret123")
	assert.Equal(t, "/restaurant/search", resp.Header.Get("Location"))
}

func TestRouter_CSRF(t *testing.T) {
	site := newTestSite(t, false)

	resp, _ := site.post("/login", url.Values{"email": {"maria@example.com"}, "password": {"password123"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, body := site.get("/login")
	token := csrfTokenFrom(t, body)

	resp, _ = site.post("/login", url.Values{
		"email":      {"maria@example.com"},
		"password":   {"password123"},
		"csrf_token": {token},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func csrfTokenFrom(t *testing.T, body string) string {
	t.Helper()
	const marker = `name="csrf_token" value="`
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "no csrf field in page")
	rest := body[i+len(marker):]
	return rest[:strings.Index(rest, `"`)]
}
