package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"food-ordering-web/internal/format"
	"food-ordering-web/internal/models"

	"github.com/shopspring/decimal"
)

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token. The profile is optional: when
// absent it is read from the token claims.
type LoginResponse struct {
	Token  string     `json:"token"`
	Client *ClientDTO `json:"client,omitempty"`
}

func (r *LoginResponse) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("token is empty")
	}
	if r.Client != nil {
		return r.Client.validateProfile()
	}
	return nil
}

// SignUpRequest is the body of POST /client
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

// ClientDTO is the client resource returned by GET /client/{id}
type ClientDTO struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Type     string     `json:"type"`
	URLImage string     `json:"urlImage"`
	Cards    []CardDTO  `json:"cards"`
	Orders   []OrderDTO `json:"orders"`
}

func (c *ClientDTO) validateProfile() error {
	if c.ID <= 0 {
		return errors.New("client id is missing")
	}
	if c.Email == "" {
		return errors.New("client email is missing")
	}
	return nil
}

func (c *ClientDTO) Validate() error {
	if err := c.validateProfile(); err != nil {
		return err
	}
	for i := range c.Cards {
		if err := c.Cards[i].Validate(); err != nil {
			return fmt.Errorf("cards[%d]: %w", i, err)
		}
	}
	for i := range c.Orders {
		if err := c.Orders[i].Validate(); err != nil {
			return fmt.Errorf("orders[%d]: %w", i, err)
		}
	}
	return nil
}

// Profile converts the client resource to a session profile
func (c *ClientDTO) Profile() (models.Profile, error) {
	accountType := models.AccountCustomer
	if c.Type != "" {
		t, err := models.ParseAccountType(c.Type)
		if err != nil {
			return models.Profile{}, err
		}
		accountType = t
	}
	return models.Profile{
		SubjectID:   strconv.Itoa(c.ID),
		Email:       c.Email,
		Name:        c.Name,
		AccountType: accountType,
		AvatarURL:   c.URLImage,
	}, nil
}

// CardModels converts the cards to their masked client-side projection
func (c *ClientDTO) CardModels() []models.CreditCard {
	cards := make([]models.CreditCard, 0, len(c.Cards))
	for _, card := range c.Cards {
		cards = append(cards, card.Model())
	}
	return cards
}

// OrderModels converts the order history
func (c *ClientDTO) OrderModels() []models.Order {
	return orderModels(c.Orders)
}

// CardDTO is a stored credit card
type CardDTO struct {
	ID         int    `json:"id"`
	Nickname   string `json:"nickname"`
	Owner      string `json:"owner"`
	CardNumber string `json:"cardNumber"`
	ValidThru  string `json:"validThru"`
}

func (c *CardDTO) Validate() error {
	if c.ID <= 0 {
		return errors.New("card id is missing")
	}
	if c.CardNumber == "" {
		return errors.New("card number is missing")
	}
	return nil
}

// Model masks the card. The full number never leaves this package.
func (c CardDTO) Model() models.CreditCard {
	return models.CreditCard{
		ID:           c.ID,
		Nickname:     c.Nickname,
		MaskedOwner:  format.MaskOwner(c.Owner),
		MaskedNumber: format.MaskCardNumber(c.CardNumber),
		ValidThru:    c.ValidThru,
	}
}

// CardRequest is the body of POST /card
type CardRequest struct {
	Nickname   string `json:"nickname"`
	Owner      string `json:"owner"`
	CardNumber string `json:"cardNumber"`
	ValidThru  string `json:"validThru"`
	CVV        string `json:"cvv"`
	Bank       string `json:"bank"`
	CPFClient  string `json:"cpfClient"`
}

// CategoryDTO is a restaurant category
type CategoryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RestaurantDTO is a restaurant resource
type RestaurantDTO struct {
	ID          int         `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    CategoryDTO `json:"category"`
	URLImage    string      `json:"urlImage"`
}

func (r *RestaurantDTO) Validate() error {
	if r.ID <= 0 {
		return errors.New("restaurant id is missing")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("restaurant name is missing")
	}
	return nil
}

func (r RestaurantDTO) Model() models.Restaurant {
	return models.Restaurant{
		ID:          r.ID,
		Email:       r.Email,
		Name:        r.Name,
		Description: r.Description,
		Category:    models.Category{ID: r.Category.ID, Name: r.Category.Name},
		AvatarURL:   r.URLImage,
	}
}

// RestaurantPage is the paged envelope of GET /restaurant
type RestaurantPage struct {
	Content []RestaurantDTO `json:"content"`
}

func (p *RestaurantPage) Validate() error {
	if p.Content == nil {
		return errors.New("content is missing")
	}
	for i := range p.Content {
		if err := p.Content[i].Validate(); err != nil {
			return fmt.Errorf("content[%d]: %w", i, err)
		}
	}
	return nil
}

// Models converts the page content
func (p *RestaurantPage) Models() []models.Restaurant {
	out := make([]models.Restaurant, 0, len(p.Content))
	for _, r := range p.Content {
		out = append(out, r.Model())
	}
	return out
}

// RestaurantDetailDTO is GET /restaurant/{id}
type RestaurantDetailDTO struct {
	RestaurantDTO
	Rating   decimal.NullDecimal `json:"rating"`
	Products []ProductDTO        `json:"products"`
	Orders   []OrderDTO          `json:"orders"`
}

func (r *RestaurantDetailDTO) Validate() error {
	if err := r.RestaurantDTO.Validate(); err != nil {
		return err
	}
	for i := range r.Products {
		if err := r.Products[i].Validate(); err != nil {
			return fmt.Errorf("products[%d]: %w", i, err)
		}
	}
	for i := range r.Orders {
		if err := r.Orders[i].Validate(); err != nil {
			return fmt.Errorf("orders[%d]: %w", i, err)
		}
	}
	return nil
}

func (r RestaurantDetailDTO) Model() *models.RestaurantDetail {
	detail := &models.RestaurantDetail{
		Restaurant: r.RestaurantDTO.Model(),
		Orders:     orderModels(r.Orders),
	}
	if r.Rating.Valid {
		detail.Rating = r.Rating.Decimal
	}
	for _, p := range r.Products {
		detail.Products = append(detail.Products, p.Model(r.ID))
	}
	return detail
}

// ProductDTO is a menu product
type ProductDTO struct {
	ID          int             `json:"id"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	URLImage    string          `json:"urlImage"`
}

func (p *ProductDTO) Validate() error {
	if p.ID <= 0 {
		return errors.New("product id is missing")
	}
	if p.Price.IsNegative() {
		return errors.New("product price is negative")
	}
	return nil
}

func (p ProductDTO) Model(restaurantID int) models.Product {
	return models.Product{
		ID:           p.ID,
		Type:         p.Type,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.URLImage,
		RestaurantID: restaurantID,
	}
}

// OrderProduct is one entry of an order product list
type OrderProduct struct {
	ProductID   int    `json:"productId"`
	Name        string `json:"name,omitempty"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// OrderRequest is the body of POST /order
type OrderRequest struct {
	ClientID     int            `json:"clientId"`
	RestaurantID int            `json:"restaurantId"`
	DiscountID   *int           `json:"discountId"`
	Observation  *string        `json:"observation"`
	ProductList  []OrderProduct `json:"productList"`
}

// OrderDTO is an order resource
type OrderDTO struct {
	ID           int             `json:"id"`
	ClientID     int             `json:"clientId"`
	RestaurantID int             `json:"restaurantId"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	CreatedAt    string          `json:"createdAt"`
	ProductList  []OrderProduct  `json:"productList"`
}

func (o *OrderDTO) Validate() error {
	if o.ID <= 0 {
		return errors.New("order id is missing")
	}
	if o.CreatedAt != "" {
		if _, err := parseTimestamp(o.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (o OrderDTO) Model() models.Order {
	order := models.Order{
		ID:           o.ID,
		ClientID:     o.ClientID,
		RestaurantID: o.RestaurantID,
		Status:       models.OrderStatus(strings.ToUpper(o.Status)),
		Total:        o.TotalPrice,
	}
	if o.CreatedAt != "" {
		order.CreatedAt, _ = parseTimestamp(o.CreatedAt)
	}
	for _, p := range o.ProductList {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   p.ProductID,
			Name:        p.Name,
			Quantity:    p.Quantity,
			Description: p.Description,
		})
	}
	return order
}

func orderModels(dtos []OrderDTO) []models.Order {
	out := make([]models.Order, 0, len(dtos))
	for _, o := range dtos {
		out = append(out, o.Model())
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
