package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/session"
	"food-ordering-web/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// apiMock is a testify mock of the remote API
type apiMock struct {
	mock.Mock
}

func (m *apiMock) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.LoginResponse), args.Error(1)
}

func (m *apiMock) GetClient(ctx context.Context, token, id string) (*api.ClientDTO, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ClientDTO), args.Error(1)
}

func (m *apiMock) CreateClient(ctx context.Context, req api.SignUpRequest) (*api.ClientDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ClientDTO), args.Error(1)
}

func (m *apiMock) ListRestaurants(ctx context.Context, token string, q api.RestaurantQuery) (*api.RestaurantPage, error) {
	args := m.Called(ctx, token, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RestaurantPage), args.Error(1)
}

func (m *apiMock) GetRestaurant(ctx context.Context, token, id string) (*api.RestaurantDetailDTO, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RestaurantDetailDTO), args.Error(1)
}

func (m *apiMock) CreateOrder(ctx context.Context, token string, req api.OrderRequest) (*api.OrderDTO, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.OrderDTO), args.Error(1)
}

func (m *apiMock) CreateCard(ctx context.Context, token string, req api.CardRequest) (*api.CardDTO, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CardDTO), args.Error(1)
}

func customerLogin() *api.LoginResponse {
	return &api.LoginResponse{
		Token:  "tok",
		Client: &api.ClientDTO{ID: 7, Name: "Maria Silva", Email: "maria@example.com", Type: "client"},
	}
}

func restaurantLogin() *api.LoginResponse {
	return &api.LoginResponse{
		Token:  "rtok",
		Client: &api.ClientDTO{ID: 1, Name: "Burger Place", Email: "burger@example.com", Type: "restaurant"},
	}
}

// newState returns client state in memory, signed in with login unless it
// is nil
func newState(t *testing.T, m *apiMock, login *api.LoginResponse) *middleware.State {
	t.Helper()

	st, err := middleware.NewState(storage.NewMemoryStorage(), m)
	require.NoError(t, err)
	if login == nil {
		return st
	}

	m.On("Login", mock.Anything, login.Client.Email, "password123").Return(login, nil).Once()
	_, err = st.Session.SignIn(context.Background(), session.Credentials{Email: login.Client.Email, Password: "password123"})
	require.NoError(t, err)
	return st
}

func getRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func htmx(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

// serve runs h with st in the request context
func serve(h http.HandlerFunc, st *middleware.State, req *http.Request) *httptest.ResponseRecorder {
	ctx := middleware.WithState(req.Context(), st)
	ctx = zerolog.Nop().WithContext(ctx)

	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func noticeTexts(t *testing.T, st *middleware.State) []string {
	t.Helper()
	notices, err := st.Notices.Pop()
	require.NoError(t, err)
	texts := make([]string, 0, len(notices))
	for _, n := range notices {
		texts = append(texts, n.Message)
	}
	return texts
}
