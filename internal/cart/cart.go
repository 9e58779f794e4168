// Package cart is the single-restaurant shopping cart of a browser. The
// whole cart is written to client storage on every mutation.
package cart

import (
	"errors"
	"fmt"

	"food-ordering-web/internal/models"
	"food-ordering-web/internal/storage"

	"github.com/shopspring/decimal"
)

const storageKey = "cart"

// MaxQuantity caps the units of one line
const MaxQuantity = 99

var (
	ErrRestaurantConflict = errors.New("cart already holds items from another restaurant")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 99")
	ErrItemNotFound       = errors.New("item not in cart")
	ErrInvalidDiscount    = errors.New("discount amount must not be negative")
)

type state struct {
	Items    []models.LineItem `json:"items"`
	Discount models.Discount   `json:"discount"`
}

func (s state) clone() state {
	items := make([]models.LineItem, len(s.Items))
	copy(items, s.Items)
	return state{Items: items, Discount: s.Discount}
}

// Store is the cart of one browser
type Store struct {
	storage storage.Storage
	state   state
}

// New rehydrates the cart. A corrupt entry is discarded.
func New(st storage.Storage) (*Store, error) {
	s := &Store{storage: st}

	var persisted state
	_, err := st.Load(storageKey, &persisted)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		if err := st.Delete(storageKey); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		s.state = persisted
	}
	return s, nil
}

// AddItem adds quantity units of product. An existing line for the same
// product is incremented; a non-empty observation replaces the old one.
// Products from another restaurant are rejected and the cart is unchanged.
func (s *Store) AddItem(product models.Product, quantity int, observation string) error {
	if quantity < 1 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if product.ID <= 0 || product.RestaurantID <= 0 {
		return fmt.Errorf("%w: product %d of restaurant %d", models.ErrInvalidInput, product.ID, product.RestaurantID)
	}
	if current := s.RestaurantID(); current != 0 && current != product.RestaurantID {
		return ErrRestaurantConflict
	}

	next := s.state.clone()
	if i := next.index(product.ID); i >= 0 {
		if next.Items[i].Quantity > MaxQuantity-quantity {
			return ErrInvalidQuantity
		}
		next.Items[i].Quantity += quantity
		if observation != "" {
			next.Items[i].Observation = observation
		}
	} else {
		next.Items = append(next.Items, models.LineItem{
			ProductID:    product.ID,
			Name:         product.Name,
			UnitPrice:    product.Price,
			Quantity:     quantity,
			Observation:  observation,
			RestaurantID: product.RestaurantID,
		})
	}
	return s.commit(next)
}

// RemoveItem drops the line for productID. Removing the last line also
// drops the discount.
func (s *Store) RemoveItem(productID int) error {
	i := s.state.index(productID)
	if i < 0 {
		return ErrItemNotFound
	}

	next := s.state.clone()
	next.Items = append(next.Items[:i], next.Items[i+1:]...)
	if len(next.Items) == 0 {
		next.Discount = models.Discount{}
	}
	return s.commit(next)
}

// UpdateQuantity sets the quantity of the line for productID
func (s *Store) UpdateQuantity(productID, quantity int) error {
	if quantity < 1 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	i := s.state.index(productID)
	if i < 0 {
		return ErrItemNotFound
	}

	next := s.state.clone()
	next.Items[i].Quantity = quantity
	return s.commit(next)
}

// ApplyDiscount attaches d, replacing any previous discount
func (s *Store) ApplyDiscount(d models.Discount) error {
	if d.Amount.IsNegative() {
		return ErrInvalidDiscount
	}
	next := s.state.clone()
	next.Discount = d
	return s.commit(next)
}

// Clear empties the cart and drops the discount
func (s *Store) Clear() error {
	return s.commit(state{})
}

func (s *Store) commit(next state) error {
	if err := s.storage.Save(storageKey, next); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	s.state = next
	return nil
}

func (s state) index(productID int) int {
	for i, item := range s.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Items returns a copy of the line items in insertion order
func (s *Store) Items() []models.LineItem {
	return s.state.clone().Items
}

// Item returns the line for productID
func (s *Store) Item(productID int) (models.LineItem, bool) {
	if i := s.state.index(productID); i >= 0 {
		return s.state.Items[i], true
	}
	return models.LineItem{}, false
}

func (s *Store) Discount() models.Discount {
	return s.state.Discount
}

// RestaurantID returns the restaurant of the cart, or 0 when empty
func (s *Store) RestaurantID() int {
	if len(s.state.Items) == 0 {
		return 0
	}
	return s.state.Items[0].RestaurantID
}

func (s *Store) IsEmpty() bool {
	return len(s.state.Items) == 0
}

// ItemCount returns the number of units across all lines
func (s *Store) ItemCount() int {
	n := 0
	for _, item := range s.state.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal is the sum of unit price times quantity, before discount
func (s *Store) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.state.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalPrice is the subtotal minus the discount, floored at zero
func (s *Store) TotalPrice() decimal.Decimal {
	total := s.Subtotal().Sub(s.state.Discount.Amount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
