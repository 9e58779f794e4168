package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/modal"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(t *testing.T, m *apiMock) (*AuthHandler, *middleware.LoginRateLimiter) {
	limiter := middleware.NewLoginRateLimiter(3, time.Minute)
	t.Cleanup(limiter.Close)
	return NewAuthHandler(services.NewSignupService(m), limiter), limiter
}

func TestLandingFor(t *testing.T) {
	customer := &models.Session{AccountType: models.AccountCustomer}
	restaurant := &models.Session{AccountType: models.AccountRestaurant}

	assert.Equal(t, "/restaurant/search", landingFor(customer, ""))
	assert.Equal(t, "/restaurants/dashboard", landingFor(restaurant, ""))
	assert.Equal(t, "/orders", landingFor(restaurant, "/orders"))
}

func TestLoginSubmit_Success(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, nil)
	h, limiter := newAuthHandler(t, m)
	m.On("Login", mock.Anything, "maria@example.com", "password123").Return(customerLogin(), nil).Once()

	req := formRequest("/login", url.Values{
		"email":    {" maria@example.com "},
		"password": {"password123"},
		"redirect": {"/restaurants/2"},
	})
	for i := 0; i < 3; i++ {
		limiter.RecordAttempt(middleware.ClientIP(req))
	}
	require.False(t, limiter.IsAllowed(middleware.ClientIP(req)))

	rec := serve(h.LoginSubmit, st, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/restaurants/2", rec.Header().Get("Location"))
	require.NotNil(t, st.Session.Current())
	assert.Equal(t, "7", st.Session.Current().SubjectID)
	assert.True(t, limiter.IsAllowed(middleware.ClientIP(req)))
}

func TestLoginSubmit_HTMX(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, nil)
	h, _ := newAuthHandler(t, m)
	m.On("Login", mock.Anything, "burger@example.com", "restaurant123").Return(restaurantLogin(), nil).Once()

	rec := serve(h.LoginSubmit, st, htmx(formRequest("/login", url.Values{
		"email":    {"burger@example.com"},
		"password": {"restaurant123"},
		"redirect": {"//evil.example"},
	})))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/restaurants/dashboard", rec.Header().Get("HX-Redirect"))
}

func TestLoginSubmit_Rejected(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, nil)
	h, _ := newAuthHandler(t, m)
	m.On("Login", mock.Anything, "maria@example.com", "nope").
		Return(nil, &api.Error{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}).Once()

	rec := serve(h.LoginSubmit, st, htmx(formRequest("/login", url.Values{
		"email":    {"maria@example.com"},
		"password": {"nope"},
	})))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="signin-form"`)
	assert.Contains(t, body, "Invalid email or password.")
	assert.Contains(t, body, `value="maria@example.com"`)
	assert.NotContains(t, body, "<html")
	assert.Nil(t, st.Session.Current())
}

func TestLoginSubmit_InvalidFormNeverCallsAPI(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, nil)
	h, _ := newAuthHandler(t, m)

	rec := serve(h.LoginSubmit, st, formRequest("/login", url.Values{"email": {"maria"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a valid email")
	assert.Contains(t, rec.Body.String(), "Password is required")
	m.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginPage_SignedInSkipsForm(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	h, _ := newAuthHandler(t, m)

	rec := serve(h.LoginPage, st, getRequest("/login?redirect=%2Fcart"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
}

func TestLogout_ClearsAccountData(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, customerLogin())
	require.NoError(t, st.SaveCardBook(&models.CardBook{Cards: []models.CreditCard{{ID: 1}}, SelectedID: 1}))
	h, _ := newAuthHandler(t, m)

	rec := serve(h.Logout, st, formRequest("/logout", nil))

	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Nil(t, st.Session.Current())
	book, err := st.CardBook()
	require.NoError(t, err)
	assert.Empty(t, book.Cards)
}

func TestHome_SignInModal(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, nil)
	st.Modal.Open(modal.SignIn)
	h, _ := newAuthHandler(t, m)

	rec := serve(h.Home, st, getRequest("/?modal=signin"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="signin-form"`)
}

func TestSignUpSubmit(t *testing.T) {
	m := &apiMock{}
	st := newState(t, m, nil)
	h, _ := newAuthHandler(t, m)
	m.On("CreateClient", mock.Anything, api.SignUpRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret123", Type: "client",
	}).Return(&api.ClientDTO{ID: 101, Name: "Ana", Email: "ana@example.com", Type: "client"}, nil).Once()

	rec := serve(h.SignUpSubmit, st, formRequest("/signup/client", url.Values{
		"name":            {" Ana "},
		"email":           {"ana@example.com"},
		"password":        {"secret123"},
		"confirmPassword": {"secret123"},
	}))

	assert.Equal(t, "/?modal=signin", rec.Header().Get("Location"))
	assert.Equal(t, []string{"Account created. Please sign in."}, noticeTexts(t, st))
}

func TestSignUpSubmit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		setup   func(m *apiMock)
		message string
	}{
		{
			name:    "passwords differ",
			form:    url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"secret123"}, "confirmPassword": {"other"}},
			message: "Passwords do not match",
		},
		{
			name: "email taken",
			form: url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"secret123"}, "confirmPassword": {"secret123"}},
			setup: func(m *apiMock) {
				m.On("CreateClient", mock.Anything, mock.Anything).
					Return(nil, &api.Error{StatusCode: http.StatusBadRequest, Message: "Email already registered"})
			},
			message: "Email already registered",
		},
		{
			name: "empty response",
			form: url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"secret123"}, "confirmPassword": {"secret123"}},
			setup: func(m *apiMock) {
				m.On("CreateClient", mock.Anything, mock.Anything).Return(nil, api.ErrEmptyResponse)
			},
			message: "We could not create your account. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &apiMock{}
			if tt.setup != nil {
				tt.setup(m)
			}
			st := newState(t, m, nil)
			h, _ := newAuthHandler(t, m)

			rec := serve(h.SignUpSubmit, st, formRequest("/signup/client", tt.form))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.NotContains(t, rec.Body.String(), "secret123")
		})
	}
}
