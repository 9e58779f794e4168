package services

import (
	"context"
	"fmt"
	"io"
	"sort"

	"food-ordering-web/internal/models"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

// Stars splits a 0-5 rating into full, half and empty stars
type Stars struct {
	Full  int
	Half  bool
	Empty int
}

// RatingStars rounds the rating to the nearest half star
func RatingStars(rating decimal.Decimal) Stars {
	halves := rating.Mul(decimal.NewFromInt(2)).Round(0).IntPart()
	if halves < 0 {
		halves = 0
	}
	if halves > 10 {
		halves = 10
	}
	s := Stars{Full: int(halves / 2), Half: halves%2 == 1}
	s.Empty = 5 - s.Full
	if s.Half {
		s.Empty--
	}
	return s
}

// RestaurantDashboard is the operator overview of a restaurant
type RestaurantDashboard struct {
	Restaurant  *models.RestaurantDetail
	TotalOrders int
	Revenue     decimal.Decimal
	Stars       Stars
}

// CustomerOverview is the customer dashboard
type CustomerOverview struct {
	Profile      models.Profile
	Cards        []models.CreditCard
	RecentOrders []models.Order
	TotalOrders  int
}

const recentOrders = 5

// DashboardService builds the customer and restaurant dashboards
type DashboardService struct {
	clients     ClientAPI
	restaurants RestaurantAPI
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(clients ClientAPI, restaurants RestaurantAPI) *DashboardService {
	return &DashboardService{
		clients:     clients,
		restaurants: restaurants,
	}
}

// RestaurantDashboard loads the restaurant of the signed-in operator
func (s *DashboardService) RestaurantDashboard(ctx context.Context, sess *models.Session) (*RestaurantDashboard, error) {
	if !sess.Authenticated() {
		return nil, ErrNotSignedIn
	}
	if !sess.IsRestaurant() {
		return nil, ErrWrongAccount
	}

	dto, err := s.restaurants.GetRestaurant(ctx, sess.Token, sess.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}

	detail := dto.Model()
	revenue := decimal.Zero
	for _, o := range detail.Orders {
		if o.Status != models.OrderCancelled {
			revenue = revenue.Add(o.Total)
		}
	}
	sortNewestFirst(detail.Orders)

	return &RestaurantDashboard{
		Restaurant:  detail,
		TotalOrders: len(detail.Orders),
		Revenue:     revenue,
		Stars:       RatingStars(detail.Rating),
	}, nil
}

// CustomerOrders returns the order history of the signed-in customer,
// newest first
func (s *DashboardService) CustomerOrders(ctx context.Context, sess *models.Session) ([]models.Order, error) {
	overview, err := s.loadCustomer(ctx, sess)
	if err != nil {
		return nil, err
	}
	return overview.RecentOrders, nil
}

// CustomerOverview returns the profile, cards and latest orders
func (s *DashboardService) CustomerOverview(ctx context.Context, sess *models.Session) (*CustomerOverview, error) {
	overview, err := s.loadCustomer(ctx, sess)
	if err != nil {
		return nil, err
	}
	if len(overview.RecentOrders) > recentOrders {
		overview.RecentOrders = overview.RecentOrders[:recentOrders]
	}
	return overview, nil
}

func (s *DashboardService) loadCustomer(ctx context.Context, sess *models.Session) (*CustomerOverview, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}

	client, err := s.clients.GetClient(ctx, sess.Token, sess.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	profile, err := client.Profile()
	if err != nil {
		return nil, err
	}

	orders := client.OrderModels()
	sortNewestFirst(orders)
	return &CustomerOverview{
		Profile:      profile,
		Cards:        client.CardModels(),
		RecentOrders: orders,
		TotalOrders:  len(orders),
	}, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// ExportOrders writes the orders of a restaurant as an xlsx workbook
func (s *DashboardService) ExportOrders(w io.Writer, restaurant *models.RestaurantDetail) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{"Order", "Client", "Status", "Items", "Total", "Created at"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	names := make(map[int]string, len(restaurant.Products))
	for _, p := range restaurant.Products {
		names[p.ID] = p.Name
	}

	for _, o := range restaurant.Orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.ClientID)
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(orderItemsSummary(o, names))
		row.AddCell().SetValue(o.Total.StringFixed(2))
		if o.CreatedAt.IsZero() {
			row.AddCell().SetValue("")
		} else {
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func orderItemsSummary(o models.Order, names map[int]string) string {
	summary := ""
	for i, item := range o.Items {
		if i > 0 {
			summary += ", "
		}
		name := item.Name
		if name == "" {
			name = names[item.ProductID]
		}
		if name == "" {
			name = fmt.Sprintf("#%d", item.ProductID)
		}
		summary += fmt.Sprintf("%dx %s", item.Quantity, name)
	}
	return summary
}
