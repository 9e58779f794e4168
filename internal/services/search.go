package services

import (
	"context"
	"fmt"
	"strings"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/models"
)

// SearchQuery selects restaurants by name keyword or by category. The
// keyword wins when both are set.
type SearchQuery struct {
	Keyword  string
	Category string
}

func (q SearchQuery) normalized() SearchQuery {
	q.Keyword = strings.TrimSpace(q.Keyword)
	q.Category = strings.TrimSpace(q.Category)
	if q.Keyword != "" {
		q.Category = ""
	}
	return q
}

// IsEmpty reports whether no filter is set
func (q SearchQuery) IsEmpty() bool {
	n := q.normalized()
	return n.Keyword == "" && n.Category == ""
}

// SearchResult is one answered search
type SearchResult struct {
	Query       SearchQuery
	Restaurants []models.Restaurant
}

// SearchService lists restaurants by keyword or category
type SearchService struct {
	restaurants RestaurantAPI
	fence       *Fence
}

// NewSearchService creates a new search service
func NewSearchService(restaurants RestaurantAPI, fence *Fence) *SearchService {
	return &SearchService{
		restaurants: restaurants,
		fence:       fence,
	}
}

// Search runs q for the browser identified by key. If another search for
// the same key started while this one was in flight, ErrStaleResult is
// returned and the result is dropped.
func (s *SearchService) Search(ctx context.Context, sess *models.Session, key string, q SearchQuery) (*SearchResult, error) {
	if !sess.Authenticated() {
		return nil, ErrNotSignedIn
	}

	q = q.normalized()
	seq := s.fence.Begin(key)

	page, err := s.restaurants.ListRestaurants(ctx, sess.Token, api.RestaurantQuery{
		Name:     q.Keyword,
		Category: q.Category,
	})

	if !s.fence.IsCurrent(key, seq) {
		return nil, ErrStaleResult
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search restaurants: %w", err)
	}

	return &SearchResult{Query: q, Restaurants: page.Models()}, nil
}
