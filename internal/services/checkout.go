package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/validation"

	"github.com/rs/zerolog"
)

// CheckoutService loads payment cards and turns a cart into an order
type CheckoutService struct {
	clients ClientAPI
	orders  OrderAPI
	cards   CardAPI
	logger  zerolog.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(clients ClientAPI, orders OrderAPI, cards CardAPI, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		clients: clients,
		orders:  orders,
		cards:   cards,
		logger:  logger,
	}
}

func requireCustomer(sess *models.Session) error {
	if !sess.Authenticated() {
		return ErrNotSignedIn
	}
	if sess.IsRestaurant() {
		return ErrWrongAccount
	}
	return nil
}

// LoadCards fetches the saved cards of the signed-in customer
func (s *CheckoutService) LoadCards(ctx context.Context, sess *models.Session) ([]models.CreditCard, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}

	client, err := s.clients.GetClient(ctx, sess.Token, sess.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	return client.CardModels(), nil
}

// Submit places the order for the cart with the selected card. Nothing is
// sent when no card is selected or the cart is empty. The cart is cleared
// only once the API has accepted the order.
func (s *CheckoutService) Submit(ctx context.Context, sess *models.Session, cart Cart, book *models.CardBook) (*models.Order, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}
	if _, ok := book.Selected(); !ok {
		return nil, ErrNoCardSelected
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	req, err := buildOrderRequest(sess, cart)
	if err != nil {
		return nil, err
	}

	dto, err := s.orders.CreateOrder(ctx, sess.Token, req)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := cart.Clear(); err != nil {
		s.logger.Error().Err(err).Int("order_id", dto.ID).Msg("order placed but cart not cleared")
	}
	book.SelectedID = 0

	order := dto.Model()
	return &order, nil
}

func buildOrderRequest(sess *models.Session, cart Cart) (api.OrderRequest, error) {
	clientID, err := sess.ClientID()
	if err != nil {
		return api.OrderRequest{}, fmt.Errorf("session subject %q is not a client id: %w", sess.SubjectID, err)
	}

	req := api.OrderRequest{
		ClientID:     clientID,
		RestaurantID: cart.RestaurantID(),
	}
	if d := cart.Discount(); d.ID != 0 {
		id := d.ID
		req.DiscountID = &id
	}
	for _, item := range cart.Items() {
		req.ProductList = append(req.ProductList, api.OrderProduct{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Description: item.Observation,
		})
	}
	return req, nil
}

// CardForm is the add-card sub-form
type CardForm struct {
	Nickname   string `form:"nickname" validate:"required"`
	Owner      string `form:"owner" validate:"required"`
	CardNumber string `form:"cardNumber" validate:"required"`
	ValidThru  string `form:"validThru" validate:"required"`
	CVV        string `form:"cvv" validate:"required,numeric,min=3,max=4"`
	CPF        string `form:"cpfClient" validate:"required"`
}

var cardMessages = validation.Messages{
	"nickname.required":   "Nickname is required",
	"owner.required":      "Name on card is required",
	"cardNumber.required": "Card number is required",
	"validThru.required":  "Expiry date is required",
	"cvv.required":        "CVV is required",
	"cvv":                 "CVV must be 3 or 4 digits",
	"cpfClient.required":  "Cardholder CPF is required",
}

var validThruPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)

// normalizeValidThru turns MM/YY into the 28/MM/20YY form the API stores
func normalizeValidThru(s string) (string, bool) {
	m := validThruPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	month, _ := strconv.Atoi(m[1])
	if month < 1 || month > 12 {
		return "", false
	}
	return "28/" + m[1] + "/20" + m[2], true
}

// normalizeCardNumber strips the separators of a masked card number
func normalizeCardNumber(s string) (string, bool) {
	n := strings.NewReplacer("-", "", " ", "").Replace(s)
	if len(n) < 13 || len(n) > 19 {
		return "", false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return n, true
}

// Validate checks the form and returns the API request
func (f CardForm) Validate() (api.CardRequest, error) {
	errs := validation.Errors{}
	if err := validation.Validate(f, cardMessages); err != nil {
		verrs, ok := err.(validation.Errors)
		if !ok {
			return api.CardRequest{}, err
		}
		errs = verrs
	}

	number, ok := normalizeCardNumber(f.CardNumber)
	if !ok && errs.Get("cardNumber") == "" {
		errs["cardNumber"] = "Enter a valid card number"
	}
	validThru, ok := normalizeValidThru(f.ValidThru)
	if !ok && errs.Get("validThru") == "" {
		errs["validThru"] = "Enter the expiry as MM/YY"
	}
	if len(errs) > 0 {
		return api.CardRequest{}, errs
	}

	return api.CardRequest{
		Nickname:   strings.TrimSpace(f.Nickname),
		Owner:      strings.TrimSpace(f.Owner),
		CardNumber: number,
		ValidThru:  validThru,
		CVV:        f.CVV,
		Bank:       strings.TrimSpace(f.Nickname),
		CPFClient:  f.CPF,
	}, nil
}

// AddCard validates and stores a card. The returned projection is meant
// to be appended to the caller's card list without a re-fetch.
func (s *CheckoutService) AddCard(ctx context.Context, sess *models.Session, form CardForm) (*models.CreditCard, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}

	req, err := form.Validate()
	if err != nil {
		return nil, err
	}

	dto, err := s.cards.CreateCard(ctx, sess.Token, req)
	if err != nil {
		return nil, fmt.Errorf("failed to add card: %w", err)
	}

	card := dto.Model()
	return &card, nil
}
