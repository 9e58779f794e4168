package pages

import (
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/internal/validation"
	"food-ordering-web/web/templates/components"

	"github.com/a-h/templ"
)

// CheckoutPage is the payment step: saved cards, the add-card form and the
// order summary
type CheckoutPage struct {
	Page       components.Page
	Summary    CartSummary
	Book       *models.CardBook
	AddingCard bool
	CardForm   services.CardForm
	CardErrors validation.Errors
}

// Checkout renders the checkout page
func Checkout(p CheckoutPage) templ.Component {
	body := components.Func(func(m *Markup) {
		m.Raw(`<a href="/cart" class="text-sm text-gray-500 hover:text-gray-800">&larr; Back</a>`)
		m.Raw(`<h1 class="my-6 text-2xl font-bold">Payment</h1>`)
		m.Raw(`<div class="grid gap-8 md:grid-cols-2">`)

		m.Raw(`<section><div class="mb-4 flex items-center justify-between"><h2 class="text-lg font-semibold">My cards</h2>`)
		if p.AddingCard {
			m.Raw(`<a href="/checkout" class="text-sm text-gray-600 hover:underline">Cancel</a>`)
		} else {
			m.Raw(`<a href="/checkout?modal=add-card" class="text-sm text-red-600 hover:underline">+ Add card</a>`)
		}
		m.Raw(`</div>`)
		m.Raw(`<div id="cards">`).Render(CardList(p.Book)).Raw(`</div>`)
		if p.AddingCard {
			m.Raw(`<div class="mt-6 rounded-xl bg-white p-6 shadow"><h3 class="mb-4 font-semibold">Payment details</h3>`)
			m.Render(AddCardForm(p.CardForm, p.CardErrors))
			m.Raw(`</div>`)
		}
		m.Raw(`</section>`)

		m.Raw(`<section><h2 class="mb-4 text-lg font-semibold">Summary</h2>`)
		m.Raw(`<ul class="divide-y rounded-xl bg-white text-sm shadow">`)
		for _, item := range p.Summary.Items {
			m.Raw(`<li class="flex justify-between p-3"><span>`).Int(item.Quantity).Raw(`x `).Text(item.Name).Raw(`</span>`)
			m.Render(components.Price(item.Subtotal())).Raw(`</li>`)
		}
		m.Raw(`</ul>`)
		m.Render(totals(p.Summary))
		m.Raw(`<form method="POST" action="/checkout" class="mt-6" hx-post="/checkout" hx-indicator="#checkout-indicator" hx-disabled-elt="find button">`)
		m.Render(components.CSRFField())
		m.Raw(`<button type="submit" class="w-full rounded-lg bg-red-600 py-3 font-medium text-white hover:bg-red-700 disabled:opacity-50">Place order</button>`)
		m.Render(components.Indicator("checkout-indicator"))
		m.Raw(`</form></section>`)

		m.Raw(`</div>`)
	})
	return components.Layout(p.Page, body, nil)
}

// CardList renders the saved cards as a single-choice list
func CardList(book *models.CardBook) templ.Component {
	return components.Func(func(m *Markup) {
		if book == nil || len(book.Cards) == 0 {
			m.Raw(`<p class="text-sm text-gray-500">You have no saved cards yet.</p>`)
			return
		}

		m.Raw(`<ul class="space-y-2">`)
		for _, c := range book.Cards {
			selected := c.ID == book.SelectedID
			m.Raw(`<li><form method="POST" action="/checkout/cards/select" hx-post="/checkout/cards/select" hx-target="#cards">`)
			m.Render(components.CSRFField())
			m.Raw(`<input type="hidden" name="cardId" value="`).Int(c.ID).Raw(`">`)
			m.Raw(`<button type="submit" aria-pressed="`).If(selected, `true`).If(!selected, `false`).Raw(`" class="flex w-full items-center justify-between rounded-xl border-2 bg-white p-4 text-left `)
			m.If(selected, `border-red-600`).If(!selected, `border-transparent shadow`)
			m.Raw(`"><span><span class="block font-medium">`).Text(c.Nickname).Raw(`</span>`)
			m.Raw(`<span class="block text-sm text-gray-500">`).Text(c.MaskedNumber).Raw(`</span></span>`)
			if c.ValidThru != "" {
				m.Raw(`<span class="text-xs text-gray-400">`).Text(c.ValidThru).Raw(`</span>`)
			}
			m.Raw(`</button></form></li>`)
		}
		m.Raw(`</ul>`)
	})
}

// AddCardForm is the new card sub-form, validated before it is posted
func AddCardForm(form services.CardForm, errs validation.Errors) templ.Component {
	return components.Func(func(m *Markup) {
		m.Raw(`<form id="add-card-form" method="POST" action="/checkout/cards">`)
		m.Render(components.CSRFField())
		m.Render(components.Field(components.FieldProps{Name: "nickname", Label: "Card nickname", Value: form.Nickname, Errors: errs}))
		m.Render(components.Field(components.FieldProps{Name: "cpfClient", Label: "Holder CPF", Value: form.CPF, Placeholder: "000.000.000-00", InputMode: "numeric", MaxLength: 14, Errors: errs}))
		m.Render(components.Field(components.FieldProps{Name: "owner", Label: "Name on card", Value: form.Owner, Errors: errs}))
		m.Render(components.Field(components.FieldProps{Name: "cardNumber", Label: "Card number", Value: form.CardNumber, Placeholder: "0000-0000-0000-0000", InputMode: "numeric", MaxLength: 23, Errors: errs}))
		m.Raw(`<div class="grid grid-cols-2 gap-4">`)
		m.Render(components.Field(components.FieldProps{Name: "validThru", Label: "Valid thru", Value: form.ValidThru, Placeholder: "MM/YY", InputMode: "numeric", MaxLength: 5, Errors: errs}))
		m.Render(components.Field(components.FieldProps{Name: "cvv", Label: "CVV", Placeholder: "123", InputMode: "numeric", MaxLength: 4, Errors: errs}))
		m.Raw(`</div>`)
		m.Raw(`<button type="submit" class="w-full rounded-lg bg-green-600 py-2 font-medium text-white hover:bg-green-700">Save card</button>`)
		m.Raw(`</form>`)
	})
}
