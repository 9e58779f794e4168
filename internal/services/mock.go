package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"food-ordering-web/internal/api"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockAPI is an in-memory stand-in for the remote API, used for demos and
// handler tests
type MockAPI struct {
	mu          sync.RWMutex
	clients     map[int]*mockAccount
	restaurants map[int]*api.RestaurantDetailDTO
	tokens      map[string]int // token -> account id
	nextID      int
}

type mockAccount struct {
	dto      api.ClientDTO
	password string
}

// NewMockAPI creates a mock API with sample restaurants and accounts
func NewMockAPI() *MockAPI {
	m := &MockAPI{
		clients:     make(map[int]*mockAccount),
		restaurants: make(map[int]*api.RestaurantDetailDTO),
		tokens:      make(map[string]int),
		nextID:      100,
	}
	m.addSampleData()
	return m
}

func (m *MockAPI) addSampleData() {
	price := decimal.RequireFromString

	m.restaurants[1] = &api.RestaurantDetailDTO{
		RestaurantDTO: api.RestaurantDTO{
			ID: 1, Email: "burger@example.com", Name: "Burger Place",
			Description: "Smash burgers and fries",
			Category:    api.CategoryDTO{ID: 1, Name: "Lanches"},
		},
		Rating: decimal.NewNullDecimal(price("3.7")),
		Products: []api.ProductDTO{
			{ID: 10, Type: "food", Name: "Cheeseburger", Description: "Double patty, cheddar and pickles", Price: price("23.90")},
			{ID: 11, Type: "food", Name: "Fries", Description: "Crispy fries with sea salt", Price: price("12.00")},
			{ID: 12, Type: "drink", Name: "Lemonade", Description: "Fresh lemonade", Price: price("8.50")},
		},
	}
	m.restaurants[2] = &api.RestaurantDetailDTO{
		RestaurantDTO: api.RestaurantDTO{
			ID: 2, Email: "sushi@example.com", Name: "Sushi House",
			Description: "Sushi and temaki",
			Category:    api.CategoryDTO{ID: 2, Name: "Japonês"},
		},
		Rating: decimal.NewNullDecimal(price("4.5")),
		Products: []api.ProductDTO{
			{ID: 20, Type: "food", Name: "Salmon temaki", Description: "Salmon, rice and nori", Price: price("29.00")},
			{ID: 21, Type: "food", Name: "Combo 20 pieces", Description: "Chef selection", Price: price("74.90")},
		},
	}

	m.clients[7] = &mockAccount{
		password: "password123",
		dto: api.ClientDTO{
			ID: 7, Name: "Maria Silva", Email: "maria@example.com", Type: "client",
			Cards: []api.CardDTO{
				{ID: 1, Nickname: "Nubank", Owner: "Maria Silva", CardNumber: "5162306219378829", ValidThru: "28/10/2030"},
			},
		},
	}
	// restaurant operators sign in with the id of their restaurant
	m.clients[1] = &mockAccount{
		password: "restaurant123",
		dto:      api.ClientDTO{ID: 1, Name: "Burger Place", Email: "burger@example.com", Type: "restaurant"},
	}
}

func forbidden(method, path string) error {
	return &api.Error{Method: method, Path: path, StatusCode: http.StatusForbidden}
}

func (m *MockAPI) accountFor(token string) (int, bool) {
	id, ok := m.tokens[token]
	return id, ok
}

// Login implements session.Authenticator
func (m *MockAPI) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, acc := range m.clients {
		if strings.EqualFold(acc.dto.Email, email) && acc.password == password {
			token := uuid.NewString()
			m.tokens[token] = id
			profile := acc.dto
			profile.Cards, profile.Orders = nil, nil
			return &api.LoginResponse{Token: token, Client: &profile}, nil
		}
	}
	return nil, &api.Error{Method: http.MethodPost, Path: "/login", StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
}

// Expire invalidates a token, as the real API does when it times out
func (m *MockAPI) Expire(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
}

func (m *MockAPI) CreateClient(ctx context.Context, req api.SignUpRequest) (*api.ClientDTO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, acc := range m.clients {
		if strings.EqualFold(acc.dto.Email, req.Email) {
			return nil, &api.Error{Method: http.MethodPost, Path: "/client", StatusCode: http.StatusBadRequest, Message: "Email already registered"}
		}
	}

	m.nextID++
	acc := &mockAccount{
		password: req.Password,
		dto:      api.ClientDTO{ID: m.nextID, Name: req.Name, Email: req.Email, Type: req.Type},
	}
	m.clients[acc.dto.ID] = acc
	out := acc.dto
	return &out, nil
}

// Ping always answers 200
func (m *MockAPI) Ping(ctx context.Context) (int, error) {
	return http.StatusOK, nil
}

func (m *MockAPI) GetClient(ctx context.Context, token, id string) (*api.ClientDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.accountFor(token)
	if !ok || strconv.Itoa(owner) != id {
		return nil, forbidden(http.MethodGet, "/client/"+id)
	}
	acc, ok := m.clients[owner]
	if !ok {
		return nil, &api.Error{Method: http.MethodGet, Path: "/client/" + id, StatusCode: http.StatusNotFound}
	}

	out := acc.dto
	out.Cards = append([]api.CardDTO(nil), acc.dto.Cards...)
	out.Orders = append([]api.OrderDTO(nil), acc.dto.Orders...)
	return &out, nil
}

func (m *MockAPI) ListRestaurants(ctx context.Context, token string, q api.RestaurantQuery) (*api.RestaurantPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.accountFor(token); !ok {
		return nil, forbidden(http.MethodGet, "/restaurant")
	}

	page := &api.RestaurantPage{Content: []api.RestaurantDTO{}}
	for id := 1; id <= len(m.restaurants); id++ {
		r, ok := m.restaurants[id]
		if !ok {
			continue
		}
		if q.Name != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q.Name)) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(r.Category.Name, q.Category) {
			continue
		}
		page.Content = append(page.Content, r.RestaurantDTO)
	}
	return page, nil
}

func (m *MockAPI) GetRestaurant(ctx context.Context, token, id string) (*api.RestaurantDetailDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.accountFor(token); !ok {
		return nil, forbidden(http.MethodGet, "/restaurant/"+id)
	}
	n, _ := strconv.Atoi(id)
	r, ok := m.restaurants[n]
	if !ok {
		return nil, &api.Error{Method: http.MethodGet, Path: "/restaurant/" + id, StatusCode: http.StatusNotFound, Message: "Restaurant not found"}
	}

	out := *r
	out.Products = append([]api.ProductDTO(nil), r.Products...)
	out.Orders = append([]api.OrderDTO(nil), r.Orders...)
	return &out, nil
}

func (m *MockAPI) CreateOrder(ctx context.Context, token string, req api.OrderRequest) (*api.OrderDTO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner, ok := m.accountFor(token)
	if !ok || owner != req.ClientID {
		return nil, forbidden(http.MethodPost, "/order")
	}
	r, ok := m.restaurants[req.RestaurantID]
	if !ok {
		return nil, &api.Error{Method: http.MethodPost, Path: "/order", StatusCode: http.StatusBadRequest, Message: "Restaurant not found"}
	}

	total := decimal.Zero
	for _, line := range req.ProductList {
		found := false
		for _, p := range r.Products {
			if p.ID == line.ProductID {
				total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
				found = true
			}
		}
		if !found {
			return nil, &api.Error{Method: http.MethodPost, Path: "/order", StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("Product %d not found", line.ProductID)}
		}
	}

	m.nextID++
	order := api.OrderDTO{
		ID:           m.nextID,
		ClientID:     req.ClientID,
		RestaurantID: req.RestaurantID,
		Status:       "PENDING",
		TotalPrice:   total,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		ProductList:  req.ProductList,
	}
	r.Orders = append(r.Orders, order)
	if acc, ok := m.clients[owner]; ok {
		acc.dto.Orders = append(acc.dto.Orders, order)
	}
	return &order, nil
}

func (m *MockAPI) CreateCard(ctx context.Context, token string, req api.CardRequest) (*api.CardDTO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner, ok := m.accountFor(token)
	if !ok {
		return nil, forbidden(http.MethodPost, "/card")
	}
	acc, ok := m.clients[owner]
	if !ok {
		return nil, forbidden(http.MethodPost, "/card")
	}
	for _, c := range acc.dto.Cards {
		if c.CardNumber == req.CardNumber {
			return nil, &api.Error{Method: http.MethodPost, Path: "/card", StatusCode: http.StatusBadRequest, Message: "Card already registered"}
		}
	}

	m.nextID++
	card := api.CardDTO{
		ID:         m.nextID,
		Nickname:   req.Nickname,
		Owner:      req.Owner,
		CardNumber: req.CardNumber,
		ValidThru:  req.ValidThru,
	}
	acc.dto.Cards = append(acc.dto.Cards, card)
	return &card, nil
}
