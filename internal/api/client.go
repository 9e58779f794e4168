// Package api is the typed client of the remote food-ordering API. Every
// response is decoded into a DTO and checked before it reaches a caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client talks to the remote API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

type validator interface {
	Validate() error
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/login", "", LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateClient registers a customer account
func (c *Client) CreateClient(ctx context.Context, req SignUpRequest) (*ClientDTO, error) {
	var out ClientDTO
	if err := c.do(ctx, http.MethodPost, "/client", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetClient fetches a customer profile with its cards and orders
func (c *Client) GetClient(ctx context.Context, token, id string) (*ClientDTO, error) {
	var out ClientDTO
	if err := c.do(ctx, http.MethodGet, "/client/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestaurantQuery filters GET /restaurant. At most one field is expected.
type RestaurantQuery struct {
	Name     string
	Category string
}

func (q RestaurantQuery) values() url.Values {
	v := url.Values{}
	if q.Name != "" {
		v.Set("nameRestaurant", q.Name)
	}
	if q.Category != "" {
		v.Set("nameCategory", q.Category)
	}
	return v
}

// ListRestaurants searches restaurants by name or category
func (c *Client) ListRestaurants(ctx context.Context, token string, q RestaurantQuery) (*RestaurantPage, error) {
	path := "/restaurant"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	var out RestaurantPage
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRestaurant fetches a restaurant with its menu, rating and orders
func (c *Client) GetRestaurant(ctx context.Context, token string, id string) (*RestaurantDetailDTO, error) {
	var out RestaurantDetailDTO
	if err := c.do(ctx, http.MethodGet, "/restaurant/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder places an order
func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (*OrderDTO, error) {
	var out OrderDTO
	if err := c.do(ctx, http.MethodPost, "/order", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCard stores a credit card for the signed-in customer
func (c *Client) CreateCard(ctx context.Context, token string, req CardRequest) (*CardDTO, error) {
	var out CardDTO
	if err := c.do(ctx, http.MethodPost, "/card", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks that the API answers. Any HTTP answer counts as reachable.
func (c *Client) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/restaurant", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET /restaurant: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out validator) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("api request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	if out == nil {
		return nil
	}

	endpoint := method + " " + routeOf(path)
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &DecodeError{Endpoint: endpoint, Err: ErrEmptyResponse}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	if err := out.Validate(); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// errorMessage extracts {"message": "..."} from an error body, falling back
// to the raw text when it is short
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}

	text := strings.TrimSpace(string(raw))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

// routeOf strips the query and collapses numeric segments so endpoint
// names stay stable in errors
func routeOf(path string) string {
	path, _, _ = strings.Cut(path, "?")
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if _, err := strconv.Atoi(s); err == nil {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

// IsSessionExpired reports whether err was caused by an expired token
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}
