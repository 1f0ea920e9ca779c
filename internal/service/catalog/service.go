package catalog

import (
	"context"
	"log"
	"strings"

	"grocery-storefront/internal/domain"
)

type productLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Service shapes the backend catalog for the storefront: category chips,
// search filtering and category-grouped sections. A backend fetch failure
// degrades to an empty listing with a logged diagnostic; no retry.
type Service struct {
	backend productLister
	logger  *log.Logger
}

func New(backend productLister, logger *log.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// CategoryGroup is one storefront section: a category and its products,
// in catalog order.
type CategoryGroup struct {
	Category string           `json:"category"`
	Products []domain.Product `json:"products"`
}

// List returns catalog products matching the category filter ("" or
// "All" keeps everything) and a case-insensitive title search.
func (s *Service) List(ctx context.Context, category, search string) []domain.Product {
	products := s.fetch(ctx)
	search = strings.ToLower(strings.TrimSpace(search))

	var out []domain.Product
	for _, p := range products {
		if !matchesCategory(p, category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Grouped returns the filtered catalog grouped into category sections,
// categories ordered by first appearance.
func (s *Service) Grouped(ctx context.Context, category, search string) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)

	for _, p := range s.List(ctx, category, search) {
		cat := categoryOf(p)
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, CategoryGroup{Category: cat})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

// Categories returns the filter chips: "All" followed by the distinct
// categories in order of first appearance.
func (s *Service) Categories(ctx context.Context) []string {
	categories := []string{"All"}
	seen := map[string]bool{}
	for _, p := range s.fetch(ctx) {
		cat := categoryOf(p)
		if !seen[cat] {
			seen[cat] = true
			categories = append(categories, cat)
		}
	}
	return categories
}

func (s *Service) fetch(ctx context.Context) []domain.Product {
	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.logger.Printf("load products: %v", err)
		return nil
	}
	return products
}

func matchesCategory(p domain.Product, category string) bool {
	if category == "" || category == "All" {
		return true
	}
	return categoryOf(p) == category
}

func categoryOf(p domain.Product) string {
	if p.Category == "" {
		return "Others"
	}
	return p.Category
}
