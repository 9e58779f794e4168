package pages

import (
	"food-ordering-web/internal/models"
	"food-ordering-web/web/templates/components"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

// CartSummary is everything the cart and checkout show about the cart
type CartSummary struct {
	Items        []models.LineItem
	Discount     models.Discount
	Subtotal     decimal.Decimal
	Total        decimal.Decimal
	RestaurantID int
}

// CartPage is the cart review page
type CartPage struct {
	Page    components.Page
	Summary CartSummary
}

// Cart renders the cart page
func Cart(p CartPage) templ.Component {
	body := components.Func(func(m *Markup) {
		m.Raw(`<h1 class="mb-6 text-2xl font-bold">Your cart</h1>`)
		m.Raw(`<div id="cart">`).Render(CartContents(p.Summary)).Raw(`</div>`)
	})
	return components.Layout(p.Page, body, nil)
}

// CartContents is the part of the cart page HTMX swaps after each change
func CartContents(s CartSummary) templ.Component {
	return components.Func(func(m *Markup) {
		if len(s.Items) == 0 {
			m.Render(components.EmptyState("Your cart is empty", "Pick a restaurant and add something tasty."))
			m.Raw(`<div class="text-center"><a href="/restaurant/search" class="text-red-600 hover:underline">Browse restaurants</a></div>`)
			return
		}

		m.Raw(`<ul class="divide-y rounded-xl bg-white shadow">`)
		for _, item := range s.Items {
			m.Raw(`<li class="flex items-center justify-between gap-4 p-4"><div>`)
			m.Raw(`<p class="font-medium">`).Text(item.Name).Raw(`</p>`)
			if item.Observation != "" {
				m.Raw(`<p class="text-sm text-gray-500">`).Text(item.Observation).Raw(`</p>`)
			}
			m.Raw(`<p class="text-sm text-gray-600">`).Render(components.Price(item.UnitPrice)).Raw(`</p></div>`)

			m.Raw(`<div class="flex items-center gap-3">`)
			m.Raw(`<form method="POST" action="/cart/update" hx-post="/cart/update" hx-target="#cart" hx-trigger="change">`)
			m.Render(components.CSRFField())
			m.Raw(`<input type="hidden" name="productId" value="`).Int(item.ProductID).Raw(`">`)
			m.Raw(`<select name="quantity" aria-label="Quantity" class="rounded-lg border border-gray-300 px-2 py-1">`)
			quantityOptions(m, item.Quantity)
			m.Raw(`</select><noscript><button type="submit">Update</button></noscript></form>`)
			m.Raw(`<span class="w-24 text-right font-medium">`).Render(components.Price(item.Subtotal())).Raw(`</span>`)
			m.Raw(`<form method="POST" action="/cart/remove" hx-post="/cart/remove" hx-target="#cart">`)
			m.Render(components.CSRFField())
			m.Raw(`<input type="hidden" name="productId" value="`).Int(item.ProductID).Raw(`">`)
			m.Raw(`<button type="submit" class="text-sm text-gray-400 hover:text-red-600" aria-label="Remove">&times;</button></form>`)
			m.Raw(`</div></li>`)
		}
		m.Raw(`</ul>`)

		m.Render(totals(s))
		m.Render(discountForm(s.Discount))

		m.Raw(`<div class="mt-6 flex items-center justify-between">`)
		m.Raw(`<form method="POST" action="/cart/clear" hx-post="/cart/clear" hx-target="#cart" hx-confirm="Remove every item from the cart?">`)
		m.Render(components.CSRFField())
		m.Raw(`<button type="submit" class="text-sm text-gray-500 hover:text-red-600">Clear cart</button></form>`)
		m.Raw(`<a href="/checkout" class="rounded-lg bg-red-600 px-6 py-3 font-medium text-white hover:bg-red-700">Checkout</a>`)
		m.Raw(`</div>`)
	})
}

func totals(s CartSummary) templ.Component {
	return components.Func(func(m *Markup) {
		m.Raw(`<dl class="mt-6 space-y-1 rounded-xl bg-white p-4 text-sm shadow">`)
		m.Raw(`<div class="flex justify-between"><dt>Subtotal</dt><dd>`).Render(components.Price(s.Subtotal)).Raw(`</dd></div>`)
		if !s.Discount.IsZero() {
			m.Raw(`<div class="flex justify-between text-green-700"><dt>Discount</dt><dd>- `).Render(components.Price(s.Discount.Amount)).Raw(`</dd></div>`)
		}
		m.Raw(`<div class="flex justify-between text-base font-semibold"><dt>Total</dt><dd id="cart-total">`).Render(components.Price(s.Total)).Raw(`</dd></div>`)
		m.Raw(`</dl>`)
	})
}

func discountForm(d models.Discount) templ.Component {
	return components.Func(func(m *Markup) {
		m.Raw(`<details class="mt-4 text-sm"`).If(!d.IsZero(), ` open`).Raw(`><summary class="cursor-pointer text-gray-600">Have a discount?</summary>`)
		m.Raw(`<form method="POST" action="/cart/discount" hx-post="/cart/discount" hx-target="#cart" class="mt-2 flex items-end gap-2">`)
		m.Render(components.CSRFField())
		m.Raw(`<label class="text-gray-700">Discount id <input type="number" name="discountId" min="0" value="`)
		if d.ID > 0 {
			m.Int(d.ID)
		}
		m.Raw(`" class="block w-28 rounded-lg border border-gray-300 px-2 py-1"></label>`)
		m.Raw(`<label class="text-gray-700">Amount <input type="text" name="amount" inputmode="decimal" value="`)
		if !d.IsZero() {
			m.Text(d.Amount.StringFixed(2))
		}
		m.Raw(`" class="block w-28 rounded-lg border border-gray-300 px-2 py-1"></label>`)
		m.Raw(`<button type="submit" class="rounded-lg border border-gray-300 px-3 py-1 hover:bg-gray-100">Apply</button>`)
		m.Raw(`</form></details>`)
	})
}
