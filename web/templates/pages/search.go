package pages

import (
	"net/url"

	"food-ordering-web/internal/format"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/web/templates/components"

	"github.com/a-h/templ"
)

// SearchPage lists restaurants by keyword or category
type SearchPage struct {
	Page   components.Page
	Query  services.SearchQuery
	Result *services.SearchResult
}

// Search renders the restaurant search page
func Search(p SearchPage) templ.Component {
	body := components.Func(func(m *Markup) {
		m.Raw(`<h1 class="mb-6 text-2xl font-bold">Restaurants</h1>`)
		m.Render(searchBox(p.Query))
		m.Render(categoryShortcuts())
		m.Raw(`<div id="results" class="mt-8">`).Render(SearchResults(p.Result)).Raw(`</div>`)
	})
	return components.Layout(p.Page, body, nil)
}

// searchBox fires a fenced search per keystroke. hx-sync drops requests
// the browser has superseded; the server drops those it answers late.
func searchBox(q services.SearchQuery) templ.Component {
	return components.Func(func(m *Markup) {
		m.Raw(`<form action="/restaurant/search" method="GET" class="mx-auto mb-6 max-w-xl">`)
		m.Raw(`<input type="search" name="keyword" value="`).Text(q.Keyword).Raw(`" placeholder="Search restaurants" autocomplete="off"`)
		m.Raw(` hx-get="/restaurant/search/results" hx-trigger="input changed delay:300ms, search" hx-target="#results" hx-indicator="#search-indicator" hx-sync="this:replace" hx-push-url="false"`)
		m.Raw(` class="w-full rounded-full border border-gray-300 px-5 py-3 shadow-sm">`)
		m.Raw(`</form>`)
		m.Render(components.Indicator("search-indicator"))
	})
}

func categoryShortcuts() templ.Component {
	return components.Func(func(m *Markup) {
		m.Raw(`<div class="grid grid-cols-2 gap-4 sm:grid-cols-5">`)
		for _, c := range models.SearchCategories {
			q := url.Values{"category": {c.Name}}
			m.Raw(`<a href="/restaurant/search?`).Text(q.Encode()).Raw(`" class="overflow-hidden rounded-xl bg-white shadow hover:shadow-md">`)
			m.Raw(`<img src="/static/img/`).Text(c.ImagePath).Raw(`" alt="" class="h-24 w-full object-cover">`)
			m.Raw(`<p class="p-2 text-center text-sm font-medium">`).Text(c.Name).Raw(`</p></a>`)
		}
		m.Raw(`</div>`)
	})
}

// SearchResults is the results list swapped into #results
func SearchResults(result *services.SearchResult) templ.Component {
	return components.Func(func(m *Markup) {
		if result == nil {
			return
		}
		if len(result.Restaurants) == 0 {
			m.Render(components.EmptyState("No restaurants found", "Try another name or category."))
			return
		}

		m.Raw(`<ul class="grid gap-4 sm:grid-cols-2">`)
		for _, r := range result.Restaurants {
			m.Raw(`<li><a href="`).URL(restaurantURL(r.ID)).Raw(`" class="flex items-center gap-4 rounded-xl bg-white p-4 shadow hover:shadow-md">`)
			if r.AvatarURL != "" {
				m.Raw(`<img src="`).URL(r.AvatarURL).Raw(`" alt="" class="h-16 w-16 rounded-full object-cover">`)
			} else {
				m.Raw(`<span class="flex h-16 w-16 items-center justify-center rounded-full bg-gray-200 font-semibold">`).Text(format.Initials(r.Name)).Raw(`</span>`)
			}
			m.Raw(`<div><p class="font-semibold">`).Text(r.Name).Raw(`</p>`)
			m.Raw(`<p class="text-sm text-gray-500">`).Text(r.Category.Name).Raw(`</p>`)
			if r.Description != "" {
				m.Raw(`<p class="text-sm text-gray-600">`).Text(format.Truncate(r.Description, 80)).Raw(`</p>`)
			}
			m.Raw(`</div></a></li>`)
		}
		m.Raw(`</ul>`)
	})
}
