package pages

import (
	"net/url"
	"strconv"
	"time"

	"food-ordering-web/internal/models"
	"food-ordering-web/web/templates/components"
)

// Markup is the writer shared with the components package
type Markup = components.Markup

func orderStatusClass(s models.OrderStatus) string {
	switch s {
	case models.OrderDelivered:
		return "bg-green-100 text-green-800"
	case models.OrderCancelled:
		return "bg-red-100 text-red-800"
	case models.OrderPreparing:
		return "bg-yellow-100 text-yellow-800"
	}
	return "bg-gray-100 text-gray-800"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}

func restaurantURL(id int) string {
	return "/restaurants/" + strconv.Itoa(id)
}

// productURL opens the product modal over the menu
func productURL(restaurantID, productID int) string {
	q := url.Values{}
	q.Set("modal", "product")
	q.Set("target", strconv.Itoa(productID))
	return restaurantURL(restaurantID) + "?" + q.Encode()
}

func orderRow(m *Markup, o models.Order) {
	m.Raw(`<tr class="border-t"><td class="py-2">#`).Int(o.ID).Raw(`</td>`)
	m.Raw(`<td class="py-2">`).Text(formatDate(o.CreatedAt)).Raw(`</td>`)
	m.Raw(`<td class="py-2">`).Int(o.ItemCount()).Raw(`</td>`)
	m.Raw(`<td class="py-2"><span class="rounded-full px-2 py-0.5 text-xs font-medium `, orderStatusClass(o.Status), `">`).Text(string(o.Status)).Raw(`</span></td>`)
	m.Raw(`<td class="py-2 text-right">`).Render(components.Price(o.Total)).Raw(`</td></tr>`)
}

func ordersTable(m *Markup, orders []models.Order) {
	m.Raw(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500">`)
	m.Raw(`<th class="py-2">Order</th><th class="py-2">Date</th><th class="py-2">Items</th><th class="py-2">Status</th><th class="py-2 text-right">Total</th>`)
	m.Raw(`</tr></thead><tbody>`)
	for _, o := range orders {
		orderRow(m, o)
	}
	m.Raw(`</tbody></table>`)
}
