package pages

import (
	"food-ordering-web/internal/format"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/web/templates/components"

	"github.com/a-h/templ"
)

// CustomerDashboardPage is the customer overview
type CustomerDashboardPage struct {
	Page     components.Page
	Overview *services.CustomerOverview
}

// CustomerDashboard renders the customer overview
func CustomerDashboard(p CustomerDashboardPage) templ.Component {
	o := p.Overview
	body := components.Func(func(m *Markup) {
		m.Raw(`<div class="mb-8 flex items-center gap-4">`)
		if o.Profile.AvatarURL != "" {
			m.Raw(`<img src="`).URL(o.Profile.AvatarURL).Raw(`" alt="" class="h-16 w-16 rounded-full object-cover">`)
		} else {
			m.Raw(`<span class="flex h-16 w-16 items-center justify-center rounded-full bg-gray-200 text-lg font-semibold">`).Text(format.Initials(o.Profile.Name)).Raw(`</span>`)
		}
		m.Raw(`<div><h1 class="text-2xl font-bold">`).Text(o.Profile.Name).Raw(`</h1>`)
		m.Raw(`<p class="text-gray-500">`).Text(o.Profile.Email).Raw(` &middot; `).Text(accountLabel(p.Page.Session)).Raw(`</p></div></div>`)

		m.Raw(`<div class="grid gap-8 md:grid-cols-3">`)
		m.Raw(`<section class="md:col-span-2"><div class="mb-4 flex items-center justify-between"><h2 class="text-lg font-semibold">Recent orders</h2>`)
		m.Raw(`<a href="/orders" class="text-sm text-red-600 hover:underline">See all (`).Int(o.TotalOrders).Raw(`)</a></div>`)
		if len(o.RecentOrders) == 0 {
			m.Render(components.EmptyState("No orders yet", "Your orders will show up here."))
		} else {
			m.Raw(`<div class="rounded-xl bg-white p-4 shadow">`)
			ordersTable(m, o.RecentOrders)
			m.Raw(`</div>`)
		}
		m.Raw(`</section>`)

		m.Raw(`<section><h2 class="mb-4 text-lg font-semibold">Cards</h2>`)
		if len(o.Cards) == 0 {
			m.Raw(`<p class="text-sm text-gray-500">No saved cards.</p>`)
		}
		m.Raw(`<ul class="space-y-2">`)
		for _, c := range o.Cards {
			m.Raw(`<li class="rounded-xl bg-white p-3 shadow"><p class="font-medium">`).Text(c.Nickname).Raw(`</p>`)
			m.Raw(`<p class="text-sm text-gray-500">`).Text(c.MaskedNumber).Raw(` &middot; `).Text(c.MaskedOwner).Raw(`</p></li>`)
		}
		m.Raw(`</ul></section></div>`)
	})
	return components.Layout(p.Page, body, nil)
}

// OrdersPage is the customer order history
type OrdersPage struct {
	Page   components.Page
	Orders []models.Order
}

// Orders renders the order history
func Orders(p OrdersPage) templ.Component {
	body := components.Func(func(m *Markup) {
		m.Raw(`<h1 class="mb-6 text-2xl font-bold">My orders</h1>`)
		if len(p.Orders) == 0 {
			m.Render(components.EmptyState("No orders yet", "Once you place an order it will show up here."))
			return
		}
		m.Raw(`<div class="rounded-xl bg-white p-4 shadow">`)
		ordersTable(m, p.Orders)
		m.Raw(`</div>`)
	})
	return components.Layout(p.Page, body, nil)
}

// RestaurantDashboardPage is the restaurant operator overview
type RestaurantDashboardPage struct {
	Page      components.Page
	Dashboard *services.RestaurantDashboard
}

// RestaurantDashboard renders the operator overview
func RestaurantDashboard(p RestaurantDashboardPage) templ.Component {
	d := p.Dashboard
	r := d.Restaurant
	body := components.Func(func(m *Markup) {
		m.Raw(`<div class="mb-8 flex items-center justify-between"><div>`)
		m.Raw(`<h1 class="text-2xl font-bold">`).Text(r.Name).Raw(`</h1>`)
		m.Raw(`<p class="text-gray-500">`).Text(r.Category.Name).Raw(` &middot; `).Text(accountLabel(p.Page.Session)).Raw(`</p></div>`)
		m.Raw(`<a href="/restaurants/dashboard/orders.xlsx" class="rounded-lg border border-gray-300 px-4 py-2 text-sm hover:bg-gray-100">Export orders</a></div>`)

		m.Raw(`<div class="mb-8 grid gap-4 sm:grid-cols-3">`)
		m.Raw(`<div class="rounded-xl bg-white p-4 shadow"><p class="text-sm text-gray-500">Rating</p><p class="text-xl">`)
		m.Render(components.RatingStars(d.Stars.Full, d.Stars.Half, d.Stars.Empty))
		m.Raw(` <span class="text-sm text-gray-500">`).Text(r.Rating.StringFixed(1)).Raw(`</span></p></div>`)
		m.Raw(`<div class="rounded-xl bg-white p-4 shadow"><p class="text-sm text-gray-500">Orders</p><p class="text-xl font-semibold">`).Int(d.TotalOrders).Raw(`</p></div>`)
		m.Raw(`<div class="rounded-xl bg-white p-4 shadow"><p class="text-sm text-gray-500">Revenue</p><p class="text-xl font-semibold">`).Render(components.Price(d.Revenue)).Raw(`</p></div>`)
		m.Raw(`</div>`)

		m.Raw(`<div class="grid gap-8 md:grid-cols-2">`)
		m.Raw(`<section><h2 class="mb-4 text-lg font-semibold">Products</h2>`)
		if len(r.Products) == 0 {
			m.Render(components.EmptyState("No products", "Your menu is empty."))
		}
		m.Raw(`<ul class="space-y-2">`)
		for _, prod := range r.Products {
			m.Raw(`<li class="flex justify-between rounded-xl bg-white p-3 shadow"><span>`).Text(prod.Name).Raw(`</span>`)
			m.Render(components.Price(prod.Price)).Raw(`</li>`)
		}
		m.Raw(`</ul></section>`)

		m.Raw(`<section><h2 class="mb-4 text-lg font-semibold">Orders</h2>`)
		if len(r.Orders) == 0 {
			m.Render(components.EmptyState("No orders yet", "Orders placed at your restaurant show up here."))
		} else {
			m.Raw(`<div class="rounded-xl bg-white p-4 shadow">`)
			ordersTable(m, r.Orders)
			m.Raw(`</div>`)
		}
		m.Raw(`</section></div>`)
	})
	return components.Layout(p.Page, body, nil)
}
