package pages

import (
	"strconv"

	"food-ordering-web/internal/format"
	"food-ordering-web/internal/modal"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/web/templates/components"

	"github.com/a-h/templ"
)

// RestaurantPage is a restaurant menu with the product modal
type RestaurantPage struct {
	Page       components.Page
	Restaurant *models.RestaurantDetail
	Stars      services.Stars
	Modal      modal.State
	Product    *models.Product
	Message    string
}

// Restaurant renders the menu page
func Restaurant(p RestaurantPage) templ.Component {
	r := p.Restaurant
	body := components.Func(func(m *Markup) {
		m.Raw(`<a href="/restaurant/search" class="text-sm text-gray-500 hover:text-gray-800">&larr; Back</a>`)
		m.Raw(`<header class="my-6 flex items-center gap-6">`)
		if r.AvatarURL != "" {
			m.Raw(`<img src="`).URL(r.AvatarURL).Raw(`" alt="" class="h-24 w-24 rounded-full object-cover">`)
		}
		m.Raw(`<div><h1 class="text-3xl font-bold">`).Text(r.Name).Raw(`</h1>`)
		m.Raw(`<p class="text-gray-500">`).Text(r.Category.Name).Raw(`</p>`)
		m.Raw(`<p class="mt-1">`).Render(components.RatingStars(p.Stars.Full, p.Stars.Half, p.Stars.Empty)).Raw(` <span class="text-sm text-gray-500">`).Text(r.Rating.StringFixed(1)).Raw(`</span></p>`)
		if r.Description != "" {
			m.Raw(`<p class="mt-2 text-gray-600">`).Text(r.Description).Raw(`</p>`)
		}
		m.Raw(`</div></header>`)

		if len(r.Products) == 0 {
			m.Render(components.EmptyState("No products yet", "This restaurant has not published its menu."))
			return
		}
		m.Raw(`<ul class="grid gap-4 sm:grid-cols-2 lg:grid-cols-3">`)
		for _, prod := range r.Products {
			m.Raw(`<li><a href="`).URL(productURL(r.ID, prod.ID)).Raw(`" class="block rounded-xl bg-white p-4 shadow hover:shadow-md">`)
			if prod.ImageURL != "" {
				m.Raw(`<img src="`).URL(prod.ImageURL).Raw(`" alt="" class="mb-3 h-32 w-full rounded-lg object-cover">`)
			}
			m.Raw(`<p class="font-semibold">`).Text(prod.Name).Raw(`</p>`)
			m.Raw(`<p class="text-sm text-gray-600">`).Text(format.Truncate(prod.Description, 60)).Raw(`</p>`)
			m.Raw(`<p class="mt-2 font-medium text-red-600">`).Render(components.Price(prod.Price)).Raw(`</p>`)
			m.Raw(`</a></li>`)
		}
		m.Raw(`</ul>`)
	})

	var overlay templ.Component
	if p.Modal.IsOpen(modal.Product) && p.Product != nil {
		overlay = components.Modal(p.Product.Name, restaurantURL(r.ID), ProductForm(*p.Product, p.Message))
	}
	return components.Layout(p.Page, body, overlay)
}

// ProductForm adds a product to the cart with quantity and observation
func ProductForm(prod models.Product, message string) templ.Component {
	return components.Func(func(m *Markup) {
		if prod.ImageURL != "" {
			m.Raw(`<img src="`).URL(prod.ImageURL).Raw(`" alt="" class="mb-4 h-48 w-full rounded-lg object-cover">`)
		}
		m.Raw(`<p class="mb-2 text-gray-600">`).Text(prod.Description).Raw(`</p>`)
		m.Raw(`<p class="mb-4 text-xl font-semibold text-red-600">`).Render(components.Price(prod.Price)).Raw(`</p>`)
		m.Render(components.FormMessage(message))

		m.Raw(`<form id="product-form" method="POST" action="/cart/add">`)
		m.Render(components.CSRFField())
		m.Raw(`<input type="hidden" name="restaurantId" value="`).Int(prod.RestaurantID).Raw(`">`)
		m.Raw(`<input type="hidden" name="productId" value="`).Int(prod.ID).Raw(`">`)
		m.Raw(`<label for="observation" class="mb-1 block text-sm font-medium text-gray-700">Observation</label>`)
		m.Raw(`<textarea id="observation" name="observation" rows="2" maxlength="140" placeholder="No onions, extra sauce..." class="mb-4 w-full rounded-lg border border-gray-300 px-3 py-2"></textarea>`)
		m.Raw(`<div class="flex items-center gap-4">`)
		m.Raw(`<input type="number" name="quantity" value="1" min="1" max="99" class="w-20 rounded-lg border border-gray-300 px-3 py-2" aria-label="Quantity">`)
		m.Raw(`<button type="submit" class="flex-1 rounded-lg bg-red-600 py-2 font-medium text-white hover:bg-red-700">Add to cart</button>`)
		m.Raw(`</div></form>`)
	})
}

func quantityOptions(m *Markup, selected int) {
	for q := 1; q <= max(20, selected); q++ {
		m.Raw(`<option value="`, strconv.Itoa(q), `"`).If(q == selected, ` selected`).Raw(`>`, strconv.Itoa(q), `</option>`)
	}
}
