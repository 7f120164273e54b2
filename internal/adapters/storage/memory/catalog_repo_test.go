package memory

import (
	"context"
	"testing"
	"time"

	"pet-care-marketplace/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

func seededCatalog() *CatalogRepo {
	r := NewCatalogRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	r.PutCategory(catalog.Category{ID: "c1", Name: "Pet Food"})
	r.PutCategory(catalog.Category{ID: "c2", Name: "Accessories"})

	r.PutProduct(catalog.Product{
		ID: "p1", Name: "Premium Dog Food", Description: "dry food",
		Price: decimal.RequireFromString("999.99"), CategoryID: "c1",
		CreatedAt: base.Add(1 * time.Hour),
	})
	r.PutProduct(catalog.Product{
		ID: "p2", Name: "Cat Food", Description: "wet food",
		Price: decimal.RequireFromString("799.99"), CategoryID: "c1",
		CreatedAt: base.Add(2 * time.Hour),
	})
	r.PutProduct(catalog.Product{
		ID: "p3", Name: "Leash", Description: "for DOGS that pull",
		Price: decimal.RequireFromString("349.99"), CategoryID: "c2",
		CreatedAt: base.Add(3 * time.Hour),
	})

	return r
}

func TestCatalogRepo_SearchIsCaseInsensitive(t *testing.T) {
	r := seededCatalog()

	// matchea nombre y descripción sin importar mayúsculas
	out, err := r.ListProducts(context.Background(), catalog.ProductFilter{Search: "dOg"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 matches for 'dOg', got %d", len(out))
	}

	out, err = r.ListProducts(context.Background(), catalog.ProductFilter{Search: "zebra"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no matches, got %d", len(out))
	}
}

func TestCatalogRepo_SortOrders(t *testing.T) {
	r := seededCatalog()
	ctx := context.Background()

	out, _ := r.ListProducts(ctx, catalog.ProductFilter{Sort: catalog.SortPriceLow})
	for i := 1; i < len(out); i++ {
		if out[i].Price.LessThan(out[i-1].Price) {
			t.Fatalf("price-low not ascending: %v", out)
		}
	}

	out, _ = r.ListProducts(ctx, catalog.ProductFilter{Sort: catalog.SortPriceHigh})
	for i := 1; i < len(out); i++ {
		if out[i-1].Price.LessThan(out[i].Price) {
			t.Fatalf("price-high not descending: %v", out)
		}
	}

	// default = newest primero
	out, _ = r.ListProducts(ctx, catalog.ProductFilter{})
	if out[0].ID != "p3" || out[len(out)-1].ID != "p1" {
		t.Fatalf("expected newest first, got %v", out)
	}
}

func TestCatalogRepo_FilterAndEmbedCategory(t *testing.T) {
	r := seededCatalog()

	out, err := r.ListProducts(context.Background(), catalog.ProductFilter{CategoryID: "c1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 food products, got %d", len(out))
	}
	for _, p := range out {
		if p.Category.Name != "Pet Food" {
			t.Fatalf("expected embedded category, got %+v", p.Category)
		}
	}

	p, err := r.GetProduct(context.Background(), "p3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Category.Name != "Accessories" {
		t.Fatalf("expected embedded category on get, got %+v", p.Category)
	}

	if _, err := r.GetProduct(context.Background(), "ghost"); err != catalog.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
