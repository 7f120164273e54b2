package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pet-care-marketplace/internal/domain/catalog"
)

// CatalogRepo es el catálogo in-memory para dev/tests.
// Exportado (no devuelve interface) porque el seed necesita los Put*.
type CatalogRepo struct {
	mu         sync.RWMutex
	categories map[string]catalog.Category
	products   map[string]catalog.Product
	services   map[string]catalog.CareService
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{
		categories: make(map[string]catalog.Category),
		products:   make(map[string]catalog.Product),
		services:   make(map[string]catalog.CareService),
	}
}

func (r *CatalogRepo) PutCategory(c catalog.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
}

func (r *CatalogRepo) PutProduct(p catalog.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

func (r *CatalogRepo) PutService(s catalog.CareService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = s
}

func (r *CatalogRepo) ListProducts(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(f.Search)

	out := make([]catalog.Product, 0)
	for _, p := range r.products {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if search != "" {
			name := strings.ToLower(p.Name)
			desc := strings.ToLower(p.Description)
			if !strings.Contains(name, search) && !strings.Contains(desc, search) {
				continue
			}
		}
		out = append(out, r.withCategory(p))
	}

	switch f.Sort {
	case catalog.SortPriceLow:
		sort.Slice(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case catalog.SortPriceHigh:
		sort.Slice(out, func(i, j int) bool {
			return out[j].Price.LessThan(out[i].Price)
		})
	default: // newest
		sort.Slice(out, func(i, j int) bool {
			return out[j].CreatedAt.Before(out[i].CreatedAt)
		})
	}

	return out, nil
}

func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return r.withCategory(p), nil
}

func (r *CatalogRepo) ListServices(ctx context.Context, serviceType string) ([]catalog.CareService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.CareService, 0)
	for _, s := range r.services {
		if serviceType != "" && s.Type != serviceType {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})

	return out, nil
}

func (r *CatalogRepo) GetService(ctx context.Context, id string) (catalog.CareService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return catalog.CareService{}, catalog.ErrNotFound
	}
	return s, nil
}

// ServicesByProvider lo usa el repo de providers para armar el directorio.
func (r *CatalogRepo) ServicesByProvider(providerID string) []catalog.CareService {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.CareService, 0)
	for _, s := range r.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// caller debe tener el lock
func (r *CatalogRepo) withCategory(p catalog.Product) catalog.Product {
	if c, ok := r.categories[p.CategoryID]; ok {
		p.Category = c
	}
	return p
}
