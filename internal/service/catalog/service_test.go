package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"testing"

	"grocery-storefront/internal/domain"
)

type stubLister struct {
	products []domain.Product
	err      error
}

func (s *stubLister) ListProducts(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Title: "Basmati Rice", Category: "Rice", Price: 120},
		{ID: "p2", Title: "Toor Dal", Category: "Dal", Price: 95},
		{ID: "p3", Title: "Brown Rice", Category: "Rice", Price: 140},
		{ID: "p4", Title: "Salted Chips", Price: 30},
	}
}

func newService(l *stubLister) *Service {
	return New(l, log.New(io.Discard, "", 0))
}

func TestListFiltersByCategoryAndSearch(t *testing.T) {
	svc := newService(&stubLister{products: testCatalog()})
	ctx := context.Background()

	all := svc.List(ctx, "All", "")
	if len(all) != 4 {
		t.Fatalf("expected full catalog, got %d", len(all))
	}

	rice := svc.List(ctx, "Rice", "")
	if len(rice) != 2 {
		t.Fatalf("expected 2 rice products, got %+v", rice)
	}

	brown := svc.List(ctx, "Rice", "brown")
	if len(brown) != 1 || brown[0].ID != "p3" {
		t.Fatalf("expected case-insensitive title match, got %+v", brown)
	}
}

func TestGroupedPreservesCatalogOrder(t *testing.T) {
	svc := newService(&stubLister{products: testCatalog()})
	groups := svc.Grouped(context.Background(), "", "")

	var categories []string
	for _, g := range groups {
		categories = append(categories, g.Category)
	}
	want := []string{"Rice", "Dal", "Others"}
	if !reflect.DeepEqual(categories, want) {
		t.Fatalf("expected categories %v, got %v", want, categories)
	}
	if len(groups[0].Products) != 2 {
		t.Fatalf("expected 2 rice products grouped, got %+v", groups[0].Products)
	}
}

func TestCategoriesStartWithAll(t *testing.T) {
	svc := newService(&stubLister{products: testCatalog()})
	got := svc.Categories(context.Background())
	want := []string{"All", "Rice", "Dal", "Others"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFetchErrorDegradesToEmptyListing(t *testing.T) {
	svc := newService(&stubLister{err: errors.New("backend down")})
	if products := svc.List(context.Background(), "All", ""); len(products) != 0 {
		t.Fatalf("expected empty listing on fetch error, got %+v", products)
	}
	if categories := svc.Categories(context.Background()); !reflect.DeepEqual(categories, []string{"All"}) {
		t.Fatalf("expected bare All chip on fetch error, got %v", categories)
	}
}
