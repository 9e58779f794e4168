package components

import (
	"food-ordering-web/internal/format"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/storage"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

// Page is what every full page shares: the signed-in user, the cart badge
// and the queued toasts
type Page struct {
	Title     string
	Session   *models.Session
	CartCount int
	Notices   []storage.Notice
}

// Layout wraps body in the document shell. overlay is rendered after the
// main content and may be nil.
func Layout(p Page, body, overlay templ.Component) templ.Component {
	return Func(func(m *Markup) {
		title := "Food Ordering"
		if p.Title != "" {
			title = p.Title + " - Food Ordering"
		}

		m.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
		m.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		m.Raw(`<title>`).Text(title).Raw(`</title>`)
		m.Raw(`<link href="/static/css/output.css" rel="stylesheet">`)
		m.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		m.Raw(`</head>`)
		m.Raw(`<body class="min-h-screen bg-gray-50" hx-headers='{"X-CSRF-Token": "`).Text(getCSRFToken(m.Context())).Raw(`"}'>`)
		m.Render(Navbar(p.Session, p.CartCount))
		m.Raw(`<div id="toasts" class="fixed right-4 top-4 z-50 space-y-2">`).Render(Toasts(p.Notices)).Raw(`</div>`)
		m.Raw(`<main class="mx-auto max-w-6xl px-4 py-8">`).Render(body).Raw(`</main>`)
		m.Render(overlay)
		m.Raw(`</body></html>`)
	})
}

// Navbar shows the account links for the current session
func Navbar(sess *models.Session, cartCount int) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<nav class="border-b bg-white"><div class="mx-auto flex max-w-6xl items-center justify-between px-4 py-3">`)
		m.Raw(`<a href="/" class="text-xl font-bold text-red-600">Food Ordering</a>`)
		m.Raw(`<div class="flex items-center gap-4 text-sm">`)

		switch {
		case sess == nil:
			m.Raw(`<a href="/?modal=signin" class="text-gray-700 hover:text-red-600">Sign in</a>`)
			m.Raw(`<a href="/signup/client" class="rounded-lg bg-red-600 px-4 py-2 font-medium text-white hover:bg-red-700">Create account</a>`)
		case sess.IsRestaurant():
			m.Raw(`<a href="/restaurants/dashboard" class="text-gray-700 hover:text-red-600">Dashboard</a>`)
		default:
			m.Raw(`<a href="/restaurant/search" class="text-gray-700 hover:text-red-600">Restaurants</a>`)
			m.Raw(`<a href="/orders" class="text-gray-700 hover:text-red-600">Orders</a>`)
			m.Raw(`<a href="/cart" class="relative text-gray-700 hover:text-red-600">Cart`)
			if cartCount > 0 {
				m.Raw(` <span id="cart-count" class="rounded-full bg-red-600 px-2 py-0.5 text-xs text-white">`).Int(cartCount).Raw(`</span>`)
			}
			m.Raw(`</a>`)
		}

		if sess != nil {
			m.Raw(`<a href="/dashboard" class="flex items-center gap-2">`)
			if sess.AvatarURL != "" {
				m.Raw(`<img src="`).URL(sess.AvatarURL).Raw(`" alt="" class="h-8 w-8 rounded-full object-cover">`)
			} else {
				m.Raw(`<span class="flex h-8 w-8 items-center justify-center rounded-full bg-gray-200 text-xs font-semibold">`).Text(format.Initials(sess.Name)).Raw(`</span>`)
			}
			m.Raw(`</a>`)
			m.Raw(`<form method="POST" action="/logout">`).Render(CSRFField()).Raw(`<button type="submit" class="text-gray-500 hover:text-gray-800">Sign out</button></form>`)
		}

		m.Raw(`</div></div></nav>`)
	})
}

// Toasts renders queued notices
func Toasts(notices []storage.Notice) templ.Component {
	return Func(func(m *Markup) {
		for _, n := range notices {
			class := "border-blue-200 bg-blue-50 text-blue-800"
			switch n.Level {
			case storage.LevelSuccess:
				class = "border-green-200 bg-green-50 text-green-800"
			case storage.LevelError:
				class = "border-red-200 bg-red-50 text-red-800"
			}
			m.Raw(`<div role="status" class="toast rounded-lg border p-4 text-sm shadow `, class, `">`).Text(n.Message).Raw(`</div>`)
		}
	})
}

// Modal renders a dialog over the page. Closing follows closeURL, which
// drops the modal from the query string.
func Modal(title, closeURL string, body templ.Component) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<div id="modal" class="fixed inset-0 z-40 flex items-center justify-center bg-black/50" role="dialog" aria-modal="true">`)
		m.Raw(`<div class="w-full max-w-lg rounded-xl bg-white p-6 shadow-xl">`)
		m.Raw(`<div class="mb-4 flex items-center justify-between"><h2 class="text-lg font-semibold">`).Text(title).Raw(`</h2>`)
		m.Raw(`<a href="`).URL(closeURL).Raw(`" aria-label="Close" class="text-gray-400 hover:text-gray-700">&times;</a></div>`)
		m.Render(body)
		m.Raw(`</div></div>`)
	})
}

// Indicator is the spinner shown by hx-indicator while a request is out
func Indicator(id string) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<div id="`).Text(id).Raw(`" class="htmx-indicator py-4 text-center text-sm text-gray-500">`)
		m.Raw(`<span class="inline-block h-4 w-4 animate-spin rounded-full border-2 border-red-600 border-t-transparent align-middle"></span> Loading...</div>`)
	})
}

// EmptyState is shown when a listing has nothing to show
func EmptyState(title, message string) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<div class="py-12 text-center"><h3 class="mb-2 text-lg font-medium text-gray-900">`).Text(title).Raw(`</h3>`)
		m.Raw(`<p class="text-gray-600">`).Text(message).Raw(`</p></div>`)
	})
}

// RatingStars draws full, half and empty stars
func RatingStars(full int, half bool, empty int) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<span class="text-yellow-500" aria-hidden="true">`)
		for i := 0; i < full; i++ {
			m.Raw(`★`)
		}
		if half {
			m.Raw(`⯪`)
		}
		m.Raw(`</span><span class="text-gray-300" aria-hidden="true">`)
		for i := 0; i < empty; i++ {
			m.Raw(`☆`)
		}
		m.Raw(`</span>`)
	})
}

// Price renders a formatted amount
func Price(amount decimal.Decimal) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<span data-amount="`).Text(amount.StringFixed(2)).Raw(`">`).Text(format.Price(amount)).Raw(`</span>`)
	})
}
