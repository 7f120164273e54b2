package memory

import (
	"context"
	"sort"
	"sync"

	"pet-care-marketplace/internal/domain/providers"
)

type ProvidersRepo struct {
	mu        sync.RWMutex
	providers map[string]providers.Provider
	reviews   map[string][]providers.Review // por providerID

	catalog *CatalogRepo // para los service summaries del directorio
}

func NewProvidersRepo(catalog *CatalogRepo) *ProvidersRepo {
	return &ProvidersRepo{
		providers: make(map[string]providers.Provider),
		reviews:   make(map[string][]providers.Review),
		catalog:   catalog,
	}
}

func (r *ProvidersRepo) PutProvider(p providers.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = p
}

func (r *ProvidersRepo) PutReview(rv providers.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[rv.ProviderID] = append(r.reviews[rv.ProviderID], rv)
}

func (r *ProvidersRepo) List(ctx context.Context, providerType string) ([]providers.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]providers.Listing, 0)
	for _, p := range r.providers {
		if providerType != "" && p.Type != providerType {
			continue
		}

		ratings := make([]int, 0, len(r.reviews[p.ID]))
		for _, rv := range r.reviews[p.ID] {
			ratings = append(ratings, rv.Rating)
		}

		services := make([]providers.ServiceSummary, 0)
		for _, s := range r.catalog.ServicesByProvider(p.ID) {
			services = append(services, providers.ServiceSummary{
				ID:          s.ID,
				Name:        s.Name,
				Price:       s.Price,
				DurationMin: s.DurationMin,
			})
		}

		out = append(out, providers.Listing{
			Provider: p,
			Services: services,
			Ratings:  ratings,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})

	return out, nil
}

func (r *ProvidersRepo) GetByID(ctx context.Context, id string) (providers.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return providers.Provider{}, providers.ErrNotFound
	}
	return p, nil
}
