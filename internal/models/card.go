package models

// CreditCard is the client-side projection of a stored card. The full card
// number and CVV are never kept.
type CreditCard struct {
	ID           int    `json:"id"`
	Nickname     string `json:"nickname"`
	MaskedOwner  string `json:"masked_owner"`
	MaskedNumber string `json:"masked_number"`
	ValidThru    string `json:"valid_thru"`
}

// CardBook is the checkout view state: the cards fetched for the user and
// the one selected for the current checkout
type CardBook struct {
	Cards      []CreditCard `json:"cards"`
	SelectedID int          `json:"selected_id,omitempty"`
}

// Append adds a card returned by the API without re-fetching the list
func (b *CardBook) Append(card CreditCard) {
	b.Cards = append(b.Cards, card)
}

// Select marks one card as selected; any previous selection is replaced
func (b *CardBook) Select(id int) error {
	for _, c := range b.Cards {
		if c.ID == id {
			b.SelectedID = id
			return nil
		}
	}
	return ErrCardNotFound
}

// Selected returns the selected card, if any
func (b *CardBook) Selected() (CreditCard, bool) {
	if b.SelectedID == 0 {
		return CreditCard{}, false
	}
	for _, c := range b.Cards {
		if c.ID == b.SelectedID {
			return c, true
		}
	}
	return CreditCard{}, false
}

// Replace swaps the card list for a fresh fetch, keeping the selection only
// if the card is still present
func (b *CardBook) Replace(cards []CreditCard) {
	b.Cards = cards
	if _, ok := b.Selected(); !ok {
		b.SelectedID = 0
	}
}
