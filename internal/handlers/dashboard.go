package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"food-ordering-web/internal/services"
	"food-ordering-web/web/templates/pages"

	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	dashboards *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboards *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// CustomerDashboard renders the customer overview
func (h *DashboardHandler) CustomerDashboard(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	overview, err := h.dashboards.CustomerOverview(r.Context(), st.Session.Current())
	if err != nil {
		handleLoadFailure(w, r, st, err, "Dashboard")
		return
	}

	// keep the stored name and avatar in line with the profile
	if err := st.Session.Refresh(overview.Profile); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to refresh session profile")
	}

	render(w, r, http.StatusOK, pages.CustomerDashboard(pages.CustomerDashboardPage{
		Page:     page(r, st, "Dashboard"),
		Overview: overview,
	}))
}

// OrderHistory renders every order of the customer, newest first
func (h *DashboardHandler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	orders, err := h.dashboards.CustomerOrders(r.Context(), st.Session.Current())
	if err != nil {
		handleLoadFailure(w, r, st, err, "My orders")
		return
	}

	render(w, r, http.StatusOK, pages.Orders(pages.OrdersPage{
		Page:   page(r, st, "My orders"),
		Orders: orders,
	}))
}

// RestaurantDashboard renders the operator overview
func (h *DashboardHandler) RestaurantDashboard(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	dashboard, err := h.dashboards.RestaurantDashboard(r.Context(), st.Session.Current())
	if err != nil {
		handleLoadFailure(w, r, st, err, "Dashboard")
		return
	}

	render(w, r, http.StatusOK, pages.RestaurantDashboard(pages.RestaurantDashboardPage{
		Page:      page(r, st, "Dashboard"),
		Dashboard: dashboard,
	}))
}

// ExportOrders downloads the restaurant orders as a spreadsheet
func (h *DashboardHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	dashboard, err := h.dashboards.RestaurantDashboard(r.Context(), st.Session.Current())
	if err != nil {
		handleFailure(w, r, st, err, "/restaurants/dashboard")
		return
	}

	var buf bytes.Buffer
	if err := h.dashboards.ExportOrders(&buf, dashboard.Restaurant); err != nil {
		handleFailure(w, r, st, err, "/restaurants/dashboard")
		return
	}

	filename := fmt.Sprintf("orders-%d.xlsx", dashboard.Restaurant.ID)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to send export")
	}
}
